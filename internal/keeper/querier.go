package keeper

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kakao/chward/pkg/process"
)

// Querier reads the value of a node from the keeper listening on addr.
type Querier interface {
	Get(ctx context.Context, addr, path string) ([]byte, error)
}

// ZooKeeperQuerier speaks the ZooKeeper protocol to a keeper. It opens a
// session per call. The session has to be established within
// SessionTimeout, otherwise Get fails with ErrNoSession.
type ZooKeeperQuerier struct {
	SessionTimeout time.Duration
	Logger         *zap.Logger
}

var _ Querier = (*ZooKeeperQuerier)(nil)

func (q *ZooKeeperQuerier) Get(ctx context.Context, addr, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := q.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionTimeout := q.SessionTimeout
	if sessionTimeout <= 0 {
		sessionTimeout = DefaultSessionTimeout
	}

	conn, events, err := zk.Connect([]string{addr}, sessionTimeout,
		zk.WithLogger(zkLogger{logger.Sugar()}),
		zk.WithLogInfo(false),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "keeper: connect %s", addr)
	}
	defer conn.Close()

	if err := waitSession(ctx, events, sessionTimeout); err != nil {
		return nil, errors.WithMessagef(err, "keeper: %s", addr)
	}

	type result struct {
		data []byte
		err  error
	}
	resultC := make(chan result, 1)
	go func() {
		data, _, err := conn.Get(path)
		resultC <- result{data: data, err: err}
	}()

	select {
	case res := <-resultC:
		if res.err != nil {
			return nil, errors.Wrapf(res.err, "keeper: get %s from %s", path, addr)
		}
		return res.data, nil
	case <-ctx.Done():
		conn.Close()
		<-resultC
		return nil, ctx.Err()
	}
}

// waitSession returns once a session is established. The zk client keeps
// redialing an unreachable server, so the wait is bounded by timeout.
func waitSession(ctx context.Context, events <-chan zk.Event, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	state := zk.StateUnknown
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return errors.New("session closed")
			}
			if ev.Type != zk.EventSession {
				continue
			}
			state = ev.State
			switch state {
			case zk.StateHasSession:
				return nil
			case zk.StateAuthFailed, zk.StateExpired:
				return errors.Errorf("session %s", state)
			}
		case <-timer.C:
			return errors.Wrapf(ErrNoSession, "%s, last state %s", timeout, state)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type zkLogger struct {
	*zap.SugaredLogger
}

func (l zkLogger) Printf(format string, args ...interface{}) {
	l.Debugf(format, args...)
}

// CommandQuerier runs the keeper-client subcommand of the clickhouse binary.
type CommandQuerier struct {
	Executable string
}

var _ Querier = (*CommandQuerier)(nil)

func (q *CommandQuerier) Get(ctx context.Context, addr, path string) ([]byte, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "keeper: address %s", addr)
	}
	executable := q.Executable
	if executable == "" {
		executable = DefaultExecutable
	}
	lines, err := process.Output(ctx, executable, "keeper-client",
		"--host", host,
		"--port", port,
		"--query", "get "+path,
	)
	if err != nil {
		return nil, errors.WithMessagef(err, "keeper: get %s from %s", path, addr)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}
