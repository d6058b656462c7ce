package keeper

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultExecutable     = "clickhouse"
	DefaultSessionTimeout = 10 * time.Second
	// ConfigPath is the node holding the Raft configuration of the ensemble.
	ConfigPath = "/keeper/config"
)

// ErrNoSession is returned when a keeper does not accept a session in time,
// typically because nothing listens on its client port.
var ErrNoSession = errors.New("no session")

type config struct {
	querier Querier
	logger  *zap.Logger
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.querier == nil {
		cfg.querier = &ZooKeeperQuerier{
			SessionTimeout: DefaultSessionTimeout,
			Logger:         cfg.logger,
		}
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg config) validate() error {
	if cfg.logger == nil {
		return errors.New("keeper: logger is nil")
	}
	return nil
}

// Option configures a Client.
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

// WithQuerier sets how the client talks to keepers. It defaults to a
// ZooKeeperQuerier.
func WithQuerier(querier Querier) Option {
	return newFuncOption(func(cfg *config) {
		cfg.querier = querier
	})
}

func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logger = logger
	})
}
