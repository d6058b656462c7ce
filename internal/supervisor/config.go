package supervisor

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kakao/chward/internal/placement"
)

const DefaultExecutable = "clickhouse"

type config struct {
	layout         placement.Layout
	layoutSet      bool
	executable     string
	spawner        Spawner
	killer         Killer
	childrenLister ChildrenLister
	logger         *zap.Logger
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		executable:     DefaultExecutable,
		spawner:        ExecSpawner{},
		killer:         SignalKiller{},
		childrenLister: ProcessTableLister{},
		logger:         zap.NewNop(),
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
		err = multierr.Append(err, errors.New("supervisor: no layout"))
	}
	if len(cfg.executable) == 0 {
		err = multierr.Append(err, errors.New("supervisor: no executable"))
	}
	if cfg.spawner == nil {
		err = multierr.Append(err, errors.New("supervisor: spawner is nil"))
	}
	if cfg.killer == nil {
		err = multierr.Append(err, errors.New("supervisor: killer is nil"))
	}
	if cfg.childrenLister == nil {
		err = multierr.Append(err, errors.New("supervisor: children lister is nil"))
	}
	if cfg.logger == nil {
		err = multierr.Append(err, errors.New("supervisor: logger is nil"))
	}
	return err
}

// Option configures a Supervisor.
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

// WithLayout sets the placement layout used to locate configuration and pid
// files. It is required.
func WithLayout(layout placement.Layout) Option {
	return newFuncOption(func(cfg *config) {
		cfg.layout = layout
		cfg.layoutSet = true
	})
}

// WithExecutable sets the path of the clickhouse binary. It defaults to
// "clickhouse" looked up in PATH.
func WithExecutable(executable string) Option {
	return newFuncOption(func(cfg *config) {
		cfg.executable = executable
	})
}

func WithSpawner(spawner Spawner) Option {
	return newFuncOption(func(cfg *config) {
		cfg.spawner = spawner
	})
}

func WithKiller(killer Killer) Option {
	return newFuncOption(func(cfg *config) {
		cfg.killer = killer
	})
}

func WithChildrenLister(childrenLister ChildrenLister) Option {
	return newFuncOption(func(cfg *config) {
		cfg.childrenLister = childrenLister
	})
}

func WithLogger(logger *zap.Logger) Option {
	return newFuncOption(func(cfg *config) {
		cfg.logger = logger
	})
}
