//go:build linux

package supervisor

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func reap(t *testing.T, pid int) unix.WaitStatus {
	t.Helper()
	var ws unix.WaitStatus
	_, err := unix.Wait4(pid, &ws, 0, nil)
	require.NoError(t, err)
	return ws
}

func TestExecSpawnerAndSignalKiller(t *testing.T) {
	ctx := context.Background()

	pid, err := ExecSpawner{}.Spawn(ctx, "sleep", "30")
	require.NoError(t, err)
	require.Positive(t, pid)

	pgid, err := unix.Getpgid(pid)
	require.NoError(t, err)
	require.Equal(t, pid, pgid)

	require.NoError(t, SignalKiller{}.Kill(pid))
	ws := reap(t, pid)
	require.True(t, ws.Signaled())
	require.Equal(t, unix.SIGKILL, ws.Signal())

	require.ErrorIs(t, SignalKiller{}.Kill(pid), ErrNotRunning)
}

func TestExecSpawnerFailure(t *testing.T) {
	_, err := ExecSpawner{}.Spawn(context.Background(), "/nonexistent/clickhouse", "server")
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ExecSpawner{}.Spawn(ctx, "sleep", "30")
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessTableLister(t *testing.T) {
	if _, err := exec.LookPath("pgrep"); err != nil {
		t.Skip("pgrep not available")
	}
	ctx := context.Background()

	pid, err := ExecSpawner{}.Spawn(ctx, "sh", "-c", "sleep 30 & wait")
	require.NoError(t, err)

	var children []int
	require.Eventually(t, func() bool {
		children, err = ProcessTableLister{}.Children(ctx, pid)
		return err == nil && len(children) == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, SignalKiller{}.Kill(children[0]))
	require.NoError(t, SignalKiller{}.Kill(pid))
	reap(t, pid)

	_, err = ProcessTableLister{}.Children(ctx, pid)
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestProcessTableListerNoChildren(t *testing.T) {
	if _, err := exec.LookPath("pgrep"); err != nil {
		t.Skip("pgrep not available")
	}
	ctx := context.Background()

	pid, err := ExecSpawner{}.Spawn(ctx, "sleep", "30")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, SignalKiller{}.Kill(pid))
		reap(t, pid)
	}()

	children, err := ProcessTableLister{}.Children(ctx, pid)
	require.NoError(t, err)
	require.Empty(t, children)
}
