package flags

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/kakao/chward/pkg/util/log"
)

const (
	CategoryLogger = "Logger:"

	DefaultLogMaxSize = "100MiB"
	DefaultLogLevel   = "INFO"
)

var (
	// LogToFile is a flag that decides whether the logs are also written to
	// chward.log in the deployment directory.
	LogToFile = &cli.BoolFlag{
		Name:     "log-to-file",
		Category: CategoryLogger,
		EnvVars:  []string{"CHWARD_LOG_TO_FILE"},
		Usage:    "Append the logs to " + log.FileName + " in the deployment directory.",
	}
	// LogDir is a flag specifying another directory for the log file.
	LogDir = &cli.StringFlag{
		Name:     "logdir",
		Category: CategoryLogger,
		Aliases:  []string{"log-dir"},
		EnvVars:  []string{"CHWARD_LOG_DIR"},
		Usage:    "Directory for " + log.FileName + " instead of the deployment directory. It implies --log-to-file.",
	}
	// LogToStderr is a flag that decides whether the logs are printed to the stderr.
	LogToStderr = &cli.BoolFlag{
		Name:     "logtostderr",
		Category: CategoryLogger,
		Aliases:  []string{"log-to-stderr"},
		EnvVars:  []string{"CHWARD_LOG_TO_STDERR"},
		Value:    true,
		Usage:    "Print the logs to the stderr. Disabling it requires a log file.",
	}
	// LogMaxSize is a flag specifying the size at which the log file is rotated.
	LogMaxSize = &cli.StringFlag{
		Name:     "log-max-size",
		Category: CategoryLogger,
		EnvVars:  []string{"CHWARD_LOG_MAX_SIZE"},
		Value:    DefaultLogMaxSize,
		Usage:    "Rotate the log file at this size, for example 10MiB. It is rounded up to a whole MiB.",
		Action: func(_ *cli.Context, value string) error {
			if _, err := parseLogMaxSize(value); err != nil {
				return fmt.Errorf("invalid value \"%s\" for flag --log-max-size: %w", value, err)
			}
			return nil
		},
	}
	// LogMaxBackups is a flag specifying how many rotated log files are kept.
	LogMaxBackups = &cli.IntFlag{
		Name:     "log-max-backups",
		Category: CategoryLogger,
		EnvVars:  []string{"CHWARD_LOG_MAX_BACKUPS"},
		Value:    log.DefaultRotation.MaxBackups,
		Usage:    "Number of rotated log files to keep. Keep all if zero.",
		Action: func(_ *cli.Context, value int) error {
			if value < 0 {
				return fmt.Errorf("invalid value \"%d\" for flag --log-max-backups", value)
			}
			return nil
		},
	}
	// LogHumanReadable is a flag that decides whether logs are human-readable.
	LogHumanReadable = &cli.BoolFlag{
		Name:     "log-human-readable",
		Category: CategoryLogger,
		EnvVars:  []string{"CHWARD_LOG_HUMAN_READABLE"},
		Usage:    "Human-readable output.",
	}
	// LogLevel is a flag specifying log level.
	LogLevel = &cli.StringFlag{
		Name:     "loglevel",
		Category: CategoryLogger,
		Aliases:  []string{"log-level"},
		EnvVars:  []string{"CHWARD_LOG_LEVEL"},
		Value:    DefaultLogLevel,
		Usage:    "Log levels, either debug, info, warn, or error case-insensitively.",
		Action: func(_ *cli.Context, value string) error {
			_, err := zapcore.ParseLevel(strings.ToLower(value))
			return err
		},
	}
)

// LoggerFlags returns the flags read by ParseLoggerFlags.
func LoggerFlags() []cli.Flag {
	return []cli.Flag{
		LogToFile,
		LogDir,
		LogToStderr,
		LogMaxSize,
		LogMaxBackups,
		LogHumanReadable,
		LogLevel,
	}
}

// ParseLoggerFlags converts the logger flags into options for log.New. The
// log file, if any, goes into deploymentDir unless --logdir names another
// directory.
func ParseLoggerFlags(c *cli.Context, deploymentDir string) ([]log.Option, error) {
	maxSizeMB, err := parseLogMaxSize(c.String(LogMaxSize.Name))
	if err != nil {
		return nil, err
	}
	opts := []log.Option{
		log.WithRotation(log.Rotation{
			MaxSizeMB:  maxSizeMB,
			MaxBackups: c.Int(LogMaxBackups.Name),
		}),
	}

	logDir := c.String(LogDir.Name)
	if len(logDir) == 0 && c.Bool(LogToFile.Name) {
		logDir = deploymentDir
	}
	if len(logDir) > 0 {
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, log.WithFile(filepath.Join(logDir, log.FileName)))
	}

	if !c.Bool(LogToStderr.Name) {
		opts = append(opts, log.WithoutStderr())
	}
	if c.Bool(LogHumanReadable.Name) {
		opts = append(opts, log.WithHumanFriendly())
	}

	level, err := zapcore.ParseLevel(strings.ToLower(c.String(LogLevel.Name)))
	if err != nil {
		return nil, err
	}
	opts = append(opts, log.WithLevel(level))
	return opts, nil
}

func parseLogMaxSize(value string) (int, error) {
	size, err := units.RAMInBytes(value)
	if err != nil {
		return 0, err
	}
	if size <= 0 {
		return 0, fmt.Errorf("non-positive size %d", size)
	}
	return int((size + units.MiB - 1) / units.MiB), nil
}
