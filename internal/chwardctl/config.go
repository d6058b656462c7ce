package chwardctl

import (
	"errors"

	"go.uber.org/zap"
)

type config struct {
	orchestrator Orchestrator
	pretty       bool
	executeFunc  ExecuteFunc
	logger       *zap.Logger
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg config) validate() error {
	if cfg.orchestrator == nil {
		return errors.New("chwardctl: no orchestrator")
	}
	if cfg.executeFunc == nil {
		return errors.New("chwardctl: no execute function")
	}
	if cfg.logger == nil {
		return errors.New("chwardctl: logger is nil")
	}
	return nil
}

type Option func(*config)

func WithOrchestrator(orchestrator Orchestrator) Option {
	return func(cfg *config) {
		cfg.orchestrator = orchestrator
	}
}

func WithPrettyPrint() Option {
	return func(cfg *config) {
		cfg.pretty = true
	}
}

func WithExecuteFunc(executeFunc ExecuteFunc) Option {
	return func(cfg *config) {
		cfg.executeFunc = executeFunc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
