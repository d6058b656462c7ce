// Package settings loads the settings of a deployment from a YAML file.
package settings

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kakao/chward/internal/keeper"
	"github.com/kakao/chward/internal/placement"
	"github.com/kakao/chward/internal/projector"
	"github.com/kakao/chward/internal/supervisor"
)

const DefaultDeploymentDir = "deployment"

var xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Settings of a deployment. Zero values are not meaningful; start from
// Default.
type Settings struct {
	ClusterName   string    `yaml:"cluster_name" validate:"required,xmlname"`
	Secret        string    `yaml:"secret" validate:"required"`
	Executable    string    `yaml:"executable" validate:"required"`
	DeploymentDir string    `yaml:"deployment_dir" validate:"required,excludesall=/\\"`
	ListenHost    string    `yaml:"listen_host" validate:"required,ip|hostname"`
	BasePorts     BasePorts `yaml:"base_ports"`
	Log           Log       `yaml:"log"`
	Keeper        Keeper    `yaml:"keeper"`
}

type BasePorts struct {
	Keeper                uint16 `yaml:"keeper" validate:"required"`
	Raft                  uint16 `yaml:"raft" validate:"required"`
	ServerTCP             uint16 `yaml:"server_tcp" validate:"required"`
	ServerHTTP            uint16 `yaml:"server_http" validate:"required"`
	ServerInterserverHTTP uint16 `yaml:"server_interserver_http" validate:"required"`
}

// Log configures the logs written by keepers and servers, not by chward.
type Log struct {
	Level string `yaml:"level" validate:"oneof=trace debug information warning error"`
	Size  string `yaml:"size" validate:"required,humansize"`
	Count int    `yaml:"count" validate:"min=1"`
}

type Keeper struct {
	OperationTimeout time.Duration `yaml:"operation_timeout" validate:"gt=0"`
	SessionTimeout   time.Duration `yaml:"session_timeout" validate:"gt=0"`
	RaftLogsLevel    string        `yaml:"raft_logs_level" validate:"oneof=trace debug information warning error"`
	// Client selects how membership is read from keepers.
	Client string `yaml:"client" validate:"oneof=zookeeper command"`
	// ClientTimeout bounds the session chward opens to a keeper. It is
	// unrelated to SessionTimeout, which keepers grant to their clients.
	ClientTimeout time.Duration `yaml:"client_timeout" validate:"gt=0"`
}

const (
	KeeperClientZooKeeper = "zookeeper"
	KeeperClientCommand   = "command"
)

func Default() Settings {
	return Settings{
		ClusterName:   projector.DefaultClusterName,
		Secret:        projector.DefaultSecret,
		Executable:    supervisor.DefaultExecutable,
		DeploymentDir: DefaultDeploymentDir,
		ListenHost:    placement.DefaultListenHost,
		BasePorts: BasePorts{
			Keeper:                placement.DefaultBasePorts.Keeper,
			Raft:                  placement.DefaultBasePorts.Raft,
			ServerTCP:             placement.DefaultBasePorts.ServerTCP,
			ServerHTTP:            placement.DefaultBasePorts.ServerHTTP,
			ServerInterserverHTTP: placement.DefaultBasePorts.ServerInterserverHTTP,
		},
		Log: Log{
			Level: string(projector.DefaultLogLevel),
			Size:  projector.DefaultLogSize,
			Count: projector.DefaultLogCount,
		},
		Keeper: Keeper{
			OperationTimeout: projector.DefaultOperationTimeout,
			SessionTimeout:   projector.DefaultSessionTimeout,
			RaftLogsLevel:    string(projector.DefaultLogLevel),
			Client:           KeeperClientZooKeeper,
			ClientTimeout:    keeper.DefaultSessionTimeout,
		},
	}
}

// Load reads settings from the YAML file at path on top of Default. An empty
// path returns Default. Unknown keys are rejected.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.WithStack(err)
	}
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField()); err != nil {
		return s, errors.Wrapf(err, "settings: %s", path)
	}
	if err := s.Validate(); err != nil {
		return s, errors.WithMessagef(err, "settings: %s", path)
	}
	return s, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("xmlname", func(fl validator.FieldLevel) bool {
		return xmlNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("humansize", func(fl validator.FieldLevel) bool {
		_, err := units.RAMInBytes(fl.Field().String())
		return err == nil
	})
	return v
}

func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Layout returns the placement layout of the deployment under path.
func (s Settings) Layout(path string) placement.Layout {
	return placement.NewLayout(s.DeploymentRoot(path), placement.BasePorts{
		Keeper:                s.BasePorts.Keeper,
		Raft:                  s.BasePorts.Raft,
		ServerTCP:             s.BasePorts.ServerTCP,
		ServerHTTP:            s.BasePorts.ServerHTTP,
		ServerInterserverHTTP: s.BasePorts.ServerInterserverHTTP,
	}, s.ListenHost)
}

// DeploymentRoot returns the deployment directory under path, which holds the
// topology record and node directories.
func (s Settings) DeploymentRoot(path string) string {
	return filepath.Join(path, s.DeploymentDir)
}

// ProjectorOptions returns the options of a projector rendering
// configurations with these settings.
func (s Settings) ProjectorOptions() []projector.Option {
	return []projector.Option{
		projector.WithClusterName(s.ClusterName),
		projector.WithSecret(s.Secret),
		projector.WithLogLevel(projector.LogLevel(s.Log.Level)),
		projector.WithLogSize(s.Log.Size),
		projector.WithLogCount(s.Log.Count),
		projector.WithOperationTimeout(s.Keeper.OperationTimeout),
		projector.WithSessionTimeout(s.Keeper.SessionTimeout),
		projector.WithRaftLogsLevel(projector.LogLevel(s.Keeper.RaftLogsLevel)),
	}
}

// Querier returns the transport reading the membership of keepers.
func (s Settings) Querier(logger *zap.Logger) keeper.Querier {
	if s.Keeper.Client == KeeperClientCommand {
		return &keeper.CommandQuerier{Executable: s.Executable}
	}
	return &keeper.ZooKeeperQuerier{
		SessionTimeout: s.Keeper.ClientTimeout,
		Logger:         logger,
	}
}
