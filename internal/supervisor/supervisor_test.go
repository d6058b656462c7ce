package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/kakao/chward/internal/placement"
	"github.com/kakao/chward/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type spawnCall struct {
	name string
	args []string
}

type fakeOS struct {
	nextPID  int
	spawnErr error
	spawned  []spawnCall
	killed   []int
	killErr  map[int]error
	children map[int][]int
	listErr  map[int]error
}

func newFakeOS() *fakeOS {
	return &fakeOS{
		nextPID:  100,
		killErr:  make(map[int]error),
		children: make(map[int][]int),
		listErr:  make(map[int]error),
	}
}

func (f *fakeOS) Spawn(_ context.Context, name string, args ...string) (int, error) {
	if f.spawnErr != nil {
		return 0, f.spawnErr
	}
	f.spawned = append(f.spawned, spawnCall{name: name, args: args})
	pid := f.nextPID
	f.nextPID++
	return pid, nil
}

func (f *fakeOS) Kill(pid int) error {
	f.killed = append(f.killed, pid)
	return f.killErr[pid]
}

func (f *fakeOS) Children(_ context.Context, pid int) ([]int, error) {
	if err := f.listErr[pid]; err != nil {
		return nil, err
	}
	return f.children[pid], nil
}

func newTestSupervisor(t *testing.T, root string, fos *fakeOS) *Supervisor {
	t.Helper()
	s, err := New(
		WithLayout(placement.NewLayout(root, placement.DefaultBasePorts, "")),
		WithExecutable("/opt/clickhouse"),
		WithSpawner(fos),
		WithKiller(fos),
		WithChildrenLister(fos),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	return s
}

func mkNodeDir(t *testing.T, root string, kind types.NodeKind, id int32) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, types.NodeName(kind, id)), 0o755))
}

func TestSupervisorNew(t *testing.T) {
	_, err := New()
	require.Error(t, err)

	layout := WithLayout(placement.NewLayout("/d", placement.DefaultBasePorts, ""))
	_, err = New(layout)
	require.NoError(t, err)
	_, err = New(layout, WithExecutable(""))
	require.Error(t, err)
	_, err = New(layout, WithSpawner(nil))
	require.Error(t, err)
	_, err = New(layout, WithKiller(nil))
	require.Error(t, err)
	_, err = New(layout, WithChildrenLister(nil))
	require.Error(t, err)
}

func TestSupervisorStart(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindKeeper, 2)
	mkNodeDir(t, root, types.NodeKindServer, 1)

	require.NoError(t, s.Start(context.Background(), types.NodeKindKeeper, 2))
	require.NoError(t, s.Start(context.Background(), types.NodeKindServer, 1))

	require.Equal(t, []spawnCall{
		{name: "/opt/clickhouse", args: []string{"keeper", "-C", filepath.Join(root, "keeper-2", "keeper-config.xml")}},
		{name: "/opt/clickhouse", args: []string{"server", "-C", filepath.Join(root, "clickhouse-1", "clickhouse-config.xml")}},
	}, fos.spawned)

	pid, err := s.PIDFile(types.NodeKindKeeper, 2).Read()
	require.NoError(t, err)
	require.Equal(t, 100, pid)
	pid, err = s.PIDFile(types.NodeKindServer, 1).Read()
	require.NoError(t, err)
	require.Equal(t, 101, pid)
}

func TestSupervisorStartSpawnFailed(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	fos.spawnErr = errors.New("exec: not found")
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindKeeper, 1)

	err := s.Start(context.Background(), types.NodeKindKeeper, 1)
	require.ErrorIs(t, err, ErrSpawnFailed)
	require.Contains(t, err.Error(), "exec: not found")

	_, err = s.PIDFile(types.NodeKindKeeper, 1).Read()
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestSupervisorStopKeeper(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	fos.children[100] = []int{555}
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindKeeper, 1)

	require.NoError(t, s.Start(context.Background(), types.NodeKindKeeper, 1))
	require.NoError(t, s.Stop(context.Background(), types.NodeKindKeeper, 1))

	// keepers have no worker children to look for
	require.Equal(t, []int{100}, fos.killed)
	_, err := os.Stat(string(s.PIDFile(types.NodeKindKeeper, 1)))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSupervisorStopServerKillsChildren(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	fos.children[100] = []int{200, 201}
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindServer, 3)

	require.NoError(t, s.Start(context.Background(), types.NodeKindServer, 3))
	require.NoError(t, s.Stop(context.Background(), types.NodeKindServer, 3))
	require.Equal(t, []int{200, 201, 100}, fos.killed)
}

func TestSupervisorStopServerListChildrenFailed(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindServer, 1)

	require.NoError(t, s.PIDFile(types.NodeKindServer, 1).Write(4242))
	fos.listErr[4242] = errors.New("exec: \"pgrep\": executable file not found in $PATH")

	err := s.Stop(context.Background(), types.NodeKindServer, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotRunning)
	require.Contains(t, err.Error(), "pgrep")

	// neither the parent nor its workers are touched, and the pid file
	// survives for another attempt
	require.Empty(t, fos.killed)
	pid, err := s.PIDFile(types.NodeKindServer, 1).Read()
	require.NoError(t, err)
	require.Equal(t, 4242, pid)

	// a dead parent has no workers to look for
	fos.listErr[4242] = errors.Wrap(ErrNotRunning, "pid 4242")
	fos.killErr[4242] = errors.Wrap(ErrNotRunning, "pid 4242")
	err = s.Stop(context.Background(), types.NodeKindServer, 1)
	require.ErrorIs(t, err, ErrNotRunning)
	require.Equal(t, []int{4242}, fos.killed)
	_, err = os.Stat(string(s.PIDFile(types.NodeKindServer, 1)))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSupervisorStopNotRunning(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindKeeper, 1)

	err := s.Stop(context.Background(), types.NodeKindKeeper, 1)
	require.ErrorIs(t, err, ErrNotRunning)
	require.Empty(t, fos.killed)

	// stale pid file
	require.NoError(t, s.PIDFile(types.NodeKindKeeper, 1).Write(4242))
	fos.killErr[4242] = errors.Wrap(ErrNotRunning, "pid 4242")
	err = s.Stop(context.Background(), types.NodeKindKeeper, 1)
	require.ErrorIs(t, err, ErrNotRunning)
	_, err = os.Stat(string(s.PIDFile(types.NodeKindKeeper, 1)))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSupervisorStopKillFailed(t *testing.T) {
	root := t.TempDir()
	fos := newFakeOS()
	s := newTestSupervisor(t, root, fos)
	mkNodeDir(t, root, types.NodeKindKeeper, 1)

	require.NoError(t, s.PIDFile(types.NodeKindKeeper, 1).Write(1))
	fos.killErr[1] = errors.New("operation not permitted")
	require.Error(t, s.Stop(context.Background(), types.NodeKindKeeper, 1))

	// the pid file is kept since the process may still be running
	pid, err := s.PIDFile(types.NodeKindKeeper, 1).Read()
	require.NoError(t, err)
	require.Equal(t, 1, pid)
}

func TestSupervisorInvalidKind(t *testing.T) {
	s := newTestSupervisor(t, t.TempDir(), newFakeOS())
	require.Error(t, s.Start(context.Background(), types.NodeKindInvalid, 1))
	require.Error(t, s.Stop(context.Background(), types.NodeKindInvalid, 1))
}

func TestPIDFile(t *testing.T) {
	dir := t.TempDir()
	f := PIDFile(filepath.Join(dir, "keeper.pid"))

	_, err := f.Read()
	require.ErrorIs(t, err, ErrNotRunning)
	require.NoError(t, f.Remove())

	require.NoError(t, f.Write(1234))
	pid, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, 1234, pid)

	require.NoError(t, os.WriteFile(string(f), []byte("1234\n"), 0o644))
	pid, err = f.Read()
	require.NoError(t, err)
	assert.Equal(t, 1234, pid)

	for _, data := range []string{"", "abc", "-1", "0"} {
		require.NoError(t, os.WriteFile(string(f), []byte(data), 0o644))
		_, err = f.Read()
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotRunning)
	}

	require.NoError(t, f.Remove())
	_, err = f.Read()
	require.ErrorIs(t, err, ErrNotRunning)
}
