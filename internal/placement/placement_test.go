package placement

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kakao/chward/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestKeeperPlacement(t *testing.T) {
	l := NewLayout("/tmp/deployment", DefaultBasePorts, "")
	p, err := l.Keeper(3)
	require.NoError(t, err)

	assert.Equal(t, KeeperPlacement{
		ID:                  3,
		Dir:                 "/tmp/deployment/keeper-3",
		ConfigPath:          "/tmp/deployment/keeper-3/keeper-config.xml",
		PIDFile:             "/tmp/deployment/keeper-3/keeper.pid",
		LogFile:             "/tmp/deployment/keeper-3/logs/clickhouse-keeper.log",
		ErrorLogFile:        "/tmp/deployment/keeper-3/logs/clickhouse-keeper.err.log",
		LogStoragePath:      "/tmp/deployment/keeper-3/coordination/log",
		SnapshotStoragePath: "/tmp/deployment/keeper-3/coordination/snapshots",
		ClientPort:          20003,
		RaftPort:            21003,
	}, p)

	addr, err := l.KeeperAddress(3)
	require.NoError(t, err)
	assert.Equal(t, "[::1]:20003", addr)

	raftAddr, err := l.KeeperRaftAddress(3)
	require.NoError(t, err)
	assert.Equal(t, "[::1]:21003", raftAddr)
}

func TestServerPlacement(t *testing.T) {
	l := NewLayout("/tmp/deployment", DefaultBasePorts, "127.0.0.1")
	p, err := l.Server(2)
	require.NoError(t, err)

	assert.Equal(t, ServerPlacement{
		ID:                  2,
		Dir:                 "/tmp/deployment/clickhouse-2",
		ConfigPath:          "/tmp/deployment/clickhouse-2/clickhouse-config.xml",
		PIDFile:             "/tmp/deployment/clickhouse-2/clickhouse.pid",
		LogFile:             "/tmp/deployment/clickhouse-2/logs/clickhouse.log",
		ErrorLogFile:        "/tmp/deployment/clickhouse-2/logs/clickhouse.err.log",
		DataPath:            "/tmp/deployment/clickhouse-2/data",
		TCPPort:             22002,
		HTTPPort:            23002,
		InterserverHTTPPort: 24002,
	}, p)

	assert.Equal(t, p.ConfigPath, l.ConfigPath(types.NodeKindServer, 2))
	assert.Equal(t, p.PIDFile, l.PIDFile(types.NodeKindServer, 2))
}

func TestPlacementDeterministic(t *testing.T) {
	l1 := NewLayout("/d", DefaultBasePorts, "")
	l2 := NewLayout("/d", DefaultBasePorts, "")

	// the order of computation and other nodes do not matter
	a, err := l1.Keeper(7)
	require.NoError(t, err)
	for kid := types.KeeperID(1); kid < 10; kid++ {
		_, err := l1.Keeper(kid)
		require.NoError(t, err)
	}
	b, err := l2.Keeper(7)
	require.NoError(t, err)
	c, err := l1.Keeper(7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)

	s1, err := l1.Server(4)
	require.NoError(t, err)
	s2, err := l2.Server(4)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestPlacementInvalid(t *testing.T) {
	l := NewLayout("/d", DefaultBasePorts, "")

	_, err := l.Keeper(0)
	require.Error(t, err)
	_, err = l.Server(-1)
	require.Error(t, err)

	_, err = l.Keeper(types.KeeperID(math.MaxUint16))
	require.ErrorIs(t, err, ErrPortOutOfRange)
	_, err = l.Server(types.ServerID(math.MaxUint16 - 23000))
	require.ErrorIs(t, err, ErrPortOutOfRange)
	_, err = l.KeeperAddress(types.KeeperID(math.MaxUint16))
	require.Error(t, err)
}

func TestConfigAndPIDInDir(t *testing.T) {
	dir := filepath.Join("/d", "keeper-9")
	assert.Equal(t, filepath.Join(dir, KeeperConfigFileName), ConfigPathInDir(types.NodeKindKeeper, dir))
	assert.Equal(t, filepath.Join(dir, KeeperPIDFileName), PIDFileInDir(types.NodeKindKeeper, dir))
	assert.Equal(t, filepath.Join(dir, ServerConfigFileName), ConfigPathInDir(types.NodeKindServer, dir))
	assert.Equal(t, filepath.Join(dir, ServerPIDFileName), PIDFileInDir(types.NodeKindServer, dir))
}

func TestParseNodeDirName(t *testing.T) {
	tcs := []struct {
		name string
		kind types.NodeKind
		id   int32
		ok   bool
	}{
		{name: "keeper-1", kind: types.NodeKindKeeper, id: 1, ok: true},
		{name: "keeper-12", kind: types.NodeKindKeeper, id: 12, ok: true},
		{name: "clickhouse-3", kind: types.NodeKindServer, id: 3, ok: true},
		{name: "keeper-0"},
		{name: "keeper-"},
		{name: "keeper-x"},
		{name: "keeper"},
		{name: "clickward-metadata.json"},
		{name: "clickhouse-99999999999"},
		{name: "keeper-01"},
		{name: "keeper-+1"},
		{name: "clickhouse- 2"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			kind, id, ok := ParseNodeDirName(tc.name)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			require.Equal(t, tc.kind, kind)
			require.Equal(t, tc.id, id)
		})
	}
}
