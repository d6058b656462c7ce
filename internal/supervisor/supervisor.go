// Package supervisor starts and stops keeper and ClickHouse server processes.
//
// Processes are launched detached and tracked only through pid files in their
// node directories. Nothing waits for a process to become ready or to exit.
package supervisor

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kakao/chward/pkg/types"
)

var (
	// ErrSpawnFailed is returned when the executable cannot be launched.
	ErrSpawnFailed = errors.New("spawn failed")
	// ErrNotRunning is returned when a node has no pid file or its process
	// does not exist.
	ErrNotRunning = errors.New("not running")
)

type Supervisor struct {
	config
}

func New(opts ...Option) (*Supervisor, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Supervisor{config: cfg}, nil
}

// PIDFile returns the pid file of the node.
func (s *Supervisor) PIDFile(kind types.NodeKind, id int32) PIDFile {
	return PIDFile(s.layout.PIDFile(kind, id))
}

// Start launches the node with its configuration file and records its pid.
func (s *Supervisor) Start(ctx context.Context, kind types.NodeKind, id int32) error {
	subcommand, err := subcommandOf(kind)
	if err != nil {
		return err
	}
	name := types.NodeName(kind, id)
	configPath := s.layout.ConfigPath(kind, id)

	s.logger.Info("starting node",
		zap.String("node", name),
		zap.String("config", configPath),
	)
	pid, err := s.spawner.Spawn(ctx, s.executable, subcommand, "-C", configPath)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return errors.WithMessagef(ErrSpawnFailed, "%s: %s %s: %v", name, s.executable, subcommand, err)
	}

	if err := s.PIDFile(kind, id).Write(pid); err != nil {
		return errors.WithMessagef(err, "supervisor: %s pid %d", name, pid)
	}
	s.logger.Debug("started node", zap.String("node", name), zap.Int("pid", pid))
	return nil
}

// Stop kills the node recorded in its pid file and removes the pid file. For
// a server, the worker children of the recorded process are killed too.
func (s *Supervisor) Stop(ctx context.Context, kind types.NodeKind, id int32) error {
	if _, err := subcommandOf(kind); err != nil {
		return err
	}
	name := types.NodeName(kind, id)
	pidFile := s.PIDFile(kind, id)

	pid, err := pidFile.Read()
	if err != nil {
		return errors.WithMessage(err, name)
	}

	s.logger.Info("stopping node", zap.String("node", name), zap.Int("pid", pid))

	if kind == types.NodeKindServer {
		// The pid file is kept unless the workers are known, otherwise they
		// could not be found again.
		children, err := s.childrenLister.Children(ctx, pid)
		if err != nil && !errors.Is(err, ErrNotRunning) {
			return errors.WithMessagef(err, "%s: list children of %d", name, pid)
		}
		for _, child := range children {
			if err := s.killer.Kill(child); err != nil && !errors.Is(err, ErrNotRunning) {
				return errors.WithMessagef(err, "%s child", name)
			}
		}
	}

	killErr := s.killer.Kill(pid)
	if killErr != nil && !errors.Is(killErr, ErrNotRunning) {
		return errors.WithMessage(killErr, name)
	}
	if err := pidFile.Remove(); err != nil {
		return multierr.Append(errors.WithMessage(killErr, name), err)
	}
	if killErr != nil {
		return errors.WithMessage(killErr, name)
	}
	return nil
}

func subcommandOf(kind types.NodeKind) (string, error) {
	switch kind {
	case types.NodeKindKeeper:
		return "keeper", nil
	case types.NodeKindServer:
		return "server", nil
	default:
		return "", errors.Errorf("supervisor: invalid node kind %d", kind)
	}
}
