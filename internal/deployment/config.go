package deployment

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kakao/chward/internal/placement"
)

type config struct {
	layout     placement.Layout
	layoutSet  bool
	store      TopologyStore
	projector  ConfigProjector
	supervisor ProcessSupervisor
	fetcher    MembershipFetcher
	logger     *zap.Logger
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		logger: zap.NewNop(),
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
		err = multierr.Append(err, errors.New("deployment: no layout"))
	}
	if cfg.store == nil {
		err = multierr.Append(err, errors.New("deployment: no topology store"))
	}
	if cfg.projector == nil {
		err = multierr.Append(err, errors.New("deployment: no config projector"))
	}
	if cfg.supervisor == nil {
		err = multierr.Append(err, errors.New("deployment: no process supervisor"))
	}
	if cfg.fetcher == nil {
		err = multierr.Append(err, errors.New("deployment: no membership fetcher"))
	}
	if cfg.logger == nil {
		err = multierr.Append(err, errors.New("deployment: logger is nil"))
	}
	return err
}

// Option configures a Deployment.
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

// WithLayout sets the placement layout. Deploy scans its root directory and
// membership queries go to the keeper addresses it derives.
func WithLayout(layout placement.Layout) Option {
	return newFuncOption(func(cfg *config) {
		cfg.layout = layout
		cfg.layoutSet = true
	})
}

func WithTopologyStore(store TopologyStore) Option {
	return newFuncOption(func(cfg *config) {
		cfg.store = store
	})
}

func WithConfigProjector(projector ConfigProjector) Option {
	return newFuncOption(func(cfg *config) {
		cfg.projector = projector
	})
}

func WithProcessSupervisor(supervisor ProcessSupervisor) Option {
	return newFuncOption(func(cfg *config) {
		cfg.supervisor = supervisor
	})
}

func WithMembershipFetcher(fetcher MembershipFetcher) Option {
	return newFuncOption(func(cfg *config) {
		cfg.fetcher = fetcher
	})
}

func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logger = logger
	})
}
