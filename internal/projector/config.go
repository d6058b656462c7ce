package projector

import (
	"time"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kakao/chward/internal/placement"
)

const (
	DefaultClusterName      = "test_cluster"
	DefaultSecret           = "some-unique-value"
	DefaultLogLevel         = LogLevelTrace
	DefaultLogSize          = "100M"
	DefaultLogCount         = 1
	DefaultOperationTimeout = 10 * time.Second
	DefaultSessionTimeout   = 30 * time.Second
	DefaultShard            = 1
)

// LogLevel is a log level of ClickHouse processes.
type LogLevel string

const (
	LogLevelTrace       LogLevel = "trace"
	LogLevelDebug       LogLevel = "debug"
	LogLevelInformation LogLevel = "information"
	LogLevelWarning     LogLevel = "warning"
	LogLevelError       LogLevel = "error"
)

func (lvl LogLevel) valid() bool {
	switch lvl {
	case LogLevelTrace, LogLevelDebug, LogLevelInformation, LogLevelWarning, LogLevelError:
		return true
	}
	return false
}

type config struct {
	layout           placement.Layout
	layoutSet        bool
	clusterName      string
	secret           string
	logLevel         LogLevel
	raftLogsLevel    LogLevel
	logSize          string
	logCount         int
	operationTimeout time.Duration
	sessionTimeout   time.Duration
	logger           *zap.Logger
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		clusterName:      DefaultClusterName,
		secret:           DefaultSecret,
		logLevel:         DefaultLogLevel,
		raftLogsLevel:    DefaultLogLevel,
		logSize:          DefaultLogSize,
		logCount:         DefaultLogCount,
		operationTimeout: DefaultOperationTimeout,
		sessionTimeout:   DefaultSessionTimeout,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg config) validate() (err error) {
	if !cfg.layoutSet {
		err = multierr.Append(err, errors.New("projector: no layout"))
	}
	if len(cfg.clusterName) == 0 {
		err = multierr.Append(err, errors.New("projector: no cluster name"))
	}
	if !cfg.logLevel.valid() {
		err = multierr.Append(err, errors.Errorf("projector: invalid log level %q", cfg.logLevel))
	}
	if !cfg.raftLogsLevel.valid() {
		err = multierr.Append(err, errors.Errorf("projector: invalid raft logs level %q", cfg.raftLogsLevel))
	}
	if _, perr := units.RAMInBytes(cfg.logSize); perr != nil {
		err = multierr.Append(err, errors.Wrapf(perr, "projector: log size %q", cfg.logSize))
	}
	if cfg.logCount < 1 {
		err = multierr.Append(err, errors.Errorf("projector: non-positive log count %d", cfg.logCount))
	}
	if cfg.operationTimeout <= 0 || cfg.sessionTimeout <= 0 {
		err = multierr.Append(err, errors.New("projector: non-positive coordination timeout"))
	}
	if cfg.logger == nil {
		err = multierr.Append(err, errors.New("projector: logger is nil"))
	}
	return err
}

// Option configures a Projector.
type Option interface {
	apply(*config)
}

type funcOption struct {
	f func(*config)
}

func newFuncOption(f func(*config)) *funcOption {
	return &funcOption{f: f}
}

func (fo *funcOption) apply(cfg *config) {
	fo.f(cfg)
}

// WithLayout sets the placement layout of the deployment. It is required.
func WithLayout(layout placement.Layout) Option {
	return newFuncOption(func(cfg *config) {
		cfg.layout = layout
		cfg.layoutSet = true
	})
}

// WithClusterName sets the name of the cluster in remote_servers and macros.
func WithClusterName(clusterName string) Option {
	return newFuncOption(func(cfg *config) {
		cfg.clusterName = clusterName
	})
}

// WithSecret sets the inter-server secret of the cluster.
func WithSecret(secret string) Option {
	return newFuncOption(func(cfg *config) {
		cfg.secret = secret
	})
}

func WithLogLevel(level LogLevel) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logLevel = level
	})
}

func WithRaftLogsLevel(level LogLevel) Option {
	return newFuncOption(func(cfg *config) {
		cfg.raftLogsLevel = level
	})
}

// WithLogSize sets the rotation size of node logs, for instance, "100M".
func WithLogSize(size string) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logSize = size
	})
}

func WithLogCount(count int) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logCount = count
	})
}

func WithOperationTimeout(timeout time.Duration) Option {
	return newFuncOption(func(cfg *config) {
		cfg.operationTimeout = timeout
	})
}

func WithSessionTimeout(timeout time.Duration) Option {
	return newFuncOption(func(cfg *config) {
		cfg.sessionTimeout = timeout
	})
}

func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logger = logger
	})
}
