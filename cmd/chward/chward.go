package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kakao/chward/internal/chwardctl"
	"github.com/kakao/chward/internal/deployment"
	"github.com/kakao/chward/internal/flags"
	"github.com/kakao/chward/internal/keeper"
	"github.com/kakao/chward/internal/projector"
	"github.com/kakao/chward/internal/settings"
	"github.com/kakao/chward/internal/supervisor"
	"github.com/kakao/chward/internal/topology"
	"github.com/kakao/chward/pkg/util/log"
)

func execute(c *cli.Context, f chwardctl.ExecuteFunc) (err error) {
	path, err := filepath.Abs(c.String(flagPath.Name))
	if err != nil {
		return err
	}

	logOpts, err := flags.ParseLoggerFlags(c, path)
	if err != nil {
		return err
	}
	if c.Bool(flagVerbose.Name) {
		logOpts = append(logOpts, log.WithLevel(zapcore.DebugLevel))
	}
	logger, err := log.New(logOpts...)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	d, err := newDeployment(s, path, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := c.Duration(flagTimeout.Name); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	opts := []chwardctl.Option{
		chwardctl.WithOrchestrator(d),
		chwardctl.WithExecuteFunc(f),
		chwardctl.WithLogger(logger),
	}
	if c.Bool(flagPretty.Name) {
		opts = append(opts, chwardctl.WithPrettyPrint())
	}
	ctl, err := chwardctl.New(opts...)
	if err != nil {
		return err
	}
	res := ctl.Execute(ctx)
	if err := ctl.Print(res, c.App.Writer); err != nil {
		return err
	}
	return res.Err()
}

// loadSettings reads the settings file, if any, and applies the overriding
// flags.
func loadSettings(c *cli.Context) (settings.Settings, error) {
	s, err := settings.Load(c.String(flags.Settings.Name))
	if err != nil {
		return s, err
	}
	if c.IsSet(flags.ClusterName.Name) {
		s.ClusterName = c.String(flags.ClusterName.Name)
	}
	if c.IsSet(flags.Executable.Name) {
		s.Executable = c.String(flags.Executable.Name)
	}
	if c.IsSet(flags.DeploymentDir.Name) {
		s.DeploymentDir = c.String(flags.DeploymentDir.Name)
	}
	return s, s.Validate()
}

func newDeployment(s settings.Settings, path string, logger *zap.Logger) (*deployment.Deployment, error) {
	layout := s.Layout(path)

	store := topology.NewStore(layout.Root(), topology.WithStoreLogger(logger))

	proj, err := projector.New(append(s.ProjectorOptions(),
		projector.WithLayout(layout),
		projector.WithLogger(logger),
	)...)
	if err != nil {
		return nil, err
	}

	sup, err := supervisor.New(
		supervisor.WithLayout(layout),
		supervisor.WithExecutable(s.Executable),
		supervisor.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	kc, err := keeper.New(keeper.WithQuerier(s.Querier(logger)), keeper.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return deployment.New(
		deployment.WithLayout(layout),
		deployment.WithTopologyStore(store),
		deployment.WithConfigProjector(proj),
		deployment.WithProcessSupervisor(sup),
		deployment.WithMembershipFetcher(kc),
		deployment.WithLogger(logger),
	)
}
