package flags

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/goleak"
	"go.uber.org/multierr"

	"github.com/kakao/chward/pkg/util/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction(
		"gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun",
	))
}

func runApp(t *testing.T, flags []cli.Flag, args []string, action cli.ActionFunc) error {
	t.Helper()
	app := &cli.App{
		Name:      "test",
		Flags:     flags,
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Action:    action,
	}
	return app.Run(append([]string{"test"}, args...))
}

func TestClusterSize(t *testing.T) {
	tcs := []struct {
		name string
		args []string
		ok   bool
	}{
		{name: "Defaults", args: nil, ok: true},
		{name: "num_keepers=1", args: []string{"--num-keepers=1"}, ok: true},
		{name: "num_keepers=0", args: []string{"--num-keepers=0"}, ok: false},
		{name: "num_replicas=-1", args: []string{"--num-replicas=-1"}, ok: false},
		{name: "aliases", args: []string{"--keepers=5", "--replicas=4"}, ok: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := runApp(t, []cli.Flag{NumKeepers, NumReplicas}, tc.args, nil)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNodeID(t *testing.T) {
	tcs := []struct {
		name string
		args []string
		want int
		ok   bool
	}{
		{name: "id=4", args: []string{"--id=4"}, want: 4, ok: true},
		{name: "id=0", args: []string{"--id=0"}},
		{name: "id=-2", args: []string{"--id=-2"}},
		{name: "missing", args: nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			err := runApp(t, []cli.Flag{GetNodeIDFlag()}, tc.args, func(c *cli.Context) error {
				got = c.Int("id")
				return nil
			})
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFlagDesc(t *testing.T) {
	var (
		path    string
		pretty  bool
		timeout string
	)
	err := runApp(t, []cli.Flag{
		Path().StringFlag(true, ""),
		PrettyPrint().BoolFlag(),
		Timeout().DurationFlag(false, 0),
	}, []string{"-p", "/tmp/chward", "--pretty", "--timeout=3s"}, func(c *cli.Context) error {
		path = c.String(Path().Name)
		pretty = c.Bool(PrettyPrint().Name)
		timeout = c.Duration(Timeout().Name).String()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "/tmp/chward", path)
	require.True(t, pretty)
	require.Equal(t, "3s", timeout)

	err = runApp(t, []cli.Flag{Path().StringFlag(true, "")}, nil, nil)
	require.Error(t, err)
}

func TestParseLoggerFlags(t *testing.T) {
	tcs := []struct {
		name     string
		args     []string
		parseErr bool
		newErr   bool
	}{
		{name: "Defaults", args: nil},
		{name: "File", args: []string{"--log-to-file", "--logtostderr=false", "--loglevel", "WARN"}},
		{name: "Rotation", args: []string{"--log-to-file", "--log-max-size", "1.5MiB", "--log-max-backups", "0"}},
		{name: "Nowhere", args: []string{"--logtostderr=false"}, newErr: true},
		{name: "BadLevel", args: []string{"--loglevel", "chatty"}, parseErr: true},
		{name: "BadMaxSize", args: []string{"--log-max-size", "big"}, parseErr: true},
		{name: "ZeroMaxSize", args: []string{"--log-max-size", "0"}, parseErr: true},
		{name: "NegativeBackups", args: []string{"--log-max-backups", "-1"}, parseErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var opts []log.Option
			var parseErr error
			err := runApp(t, LoggerFlags(), tc.args, func(c *cli.Context) error {
				opts, parseErr = ParseLoggerFlags(c, t.TempDir())
				return nil
			})
			if tc.parseErr {
				// invalid values are rejected by the flag actions already
				require.Error(t, multierr.Append(err, parseErr))
				return
			}
			require.NoError(t, err)
			require.NoError(t, parseErr)

			logger, err := log.New(opts...)
			if tc.newErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			logger.Info("parsed")
			_ = logger.Sync()
		})
	}
}

func TestParseLoggerFlagsPath(t *testing.T) {
	tcs := []struct {
		name    string
		args    func(logDir string) []string
		inLog   bool
		inStore bool
	}{
		{
			name:    "DeploymentDir",
			args:    func(string) []string { return []string{"--log-to-file"} },
			inStore: true,
		},
		{
			name:  "LogDir",
			args:  func(logDir string) []string { return []string{"--logdir", logDir} },
			inLog: true,
		},
		{
			name:  "LogDirOverDeploymentDir",
			args:  func(logDir string) []string { return []string{"--log-to-file", "--log-dir", logDir} },
			inLog: true,
		},
		{
			name: "StderrOnly",
			args: func(string) []string { return nil },
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			deploymentDir := t.TempDir()
			logDir := filepath.Join(t.TempDir(), "logs")
			err := runApp(t, LoggerFlags(), tc.args(logDir), func(c *cli.Context) error {
				opts, err := ParseLoggerFlags(c, deploymentDir)
				if err != nil {
					return err
				}
				logger, err := log.New(append(opts, log.WithoutStderr())...)
				if tc.inLog || tc.inStore {
					if err != nil {
						return err
					}
					logger.Info("hello")
					return logger.Sync()
				}
				require.Error(t, err)
				return nil
			})
			require.NoError(t, err)

			assertLogFile := func(dir string, exists bool) {
				path := filepath.Join(dir, log.FileName)
				if exists {
					require.FileExists(t, path)
				} else {
					require.NoFileExists(t, path)
				}
			}
			assertLogFile(deploymentDir, tc.inStore)
			assertLogFile(logDir, tc.inLog)
		})
	}
}
