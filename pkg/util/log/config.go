package log

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/kakao/chward/pkg/util/fputil"
)

// Level is a logging priority.
type Level = zapcore.Level

// FileName is the name of the log file chward keeps next to a deployment.
const FileName = "chward.log"

// Rotation bounds the log file. Backups are named with local timestamps.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
}

// DefaultRotation keeps five backups of up to 100MB each.
var DefaultRotation = Rotation{
	MaxSizeMB:  100,
	MaxBackups: 5,
}

type config struct {
	stderr        bool
	file          string
	rotation      Rotation
	humanFriendly bool
	level         Level
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		stderr:   true,
		rotation: DefaultRotation,
		level:    zapcore.InfoLevel,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.validate()
}

func (cfg config) validate() error {
	if !cfg.stderr && len(cfg.file) == 0 {
		return errors.New("logger: neither stderr nor file")
	}
	if cfg.rotation.MaxSizeMB < 1 {
		return errors.New("logger: max size of log file must be positive")
	}
	if cfg.rotation.MaxBackups < 0 {
		return errors.New("logger: negative max backups")
	}
	if len(cfg.file) == 0 {
		return nil
	}
	if cfg.file[len(cfg.file)-1] == filepath.Separator {
		return errors.New("logger: log file is a directory")
	}
	dir := filepath.Dir(cfg.file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return fputil.IsWritableDir(dir)
}

type Option func(*config)

// WithoutStderr stops printing logs to stderr. A log file is then required.
func WithoutStderr() Option {
	return func(cfg *config) {
		cfg.stderr = false
	}
}

// WithFile writes logs to the file at path, creating its directory if needed.
func WithFile(path string) Option {
	return func(cfg *config) {
		cfg.file = path
	}
}

func WithRotation(rotation Rotation) Option {
	return func(cfg *config) {
		cfg.rotation = rotation
	}
}

func WithHumanFriendly() Option {
	return func(cfg *config) {
		cfg.humanFriendly = true
	}
}

func WithLevel(level Level) Option {
	return func(cfg *config) {
		cfg.level = level
	}
}
