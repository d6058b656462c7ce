package topology

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kakao/chward/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGenerate(t *testing.T) {
	tcs := []struct {
		name       string
		numKeepers int
		numServers int
		wantErr    bool
	}{
		{name: "ThreeKeepersTwoServers", numKeepers: 3, numServers: 2},
		{name: "Single", numKeepers: 1, numServers: 1},
		{name: "NoKeeper", numKeepers: 0, numServers: 1, wantErr: true},
		{name: "NoServer", numKeepers: 1, numServers: 0, wantErr: true},
		{name: "NegativeKeepers", numKeepers: -1, numServers: 1, wantErr: true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			topo, err := Generate(tc.numKeepers, tc.numServers)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, topo.Validate())
			require.Len(t, topo.KeeperIDs(), tc.numKeepers)
			require.Len(t, topo.ServerIDs(), tc.numServers)
			require.Equal(t, types.KeeperID(tc.numKeepers), topo.MaxKeeperID())
			require.Equal(t, types.ServerID(tc.numServers), topo.MaxServerID())
		})
	}
}

func TestGenerateThreeTwo(t *testing.T) {
	topo, err := Generate(3, 2)
	require.NoError(t, err)
	require.Equal(t, []types.KeeperID{1, 2, 3}, topo.KeeperIDs())
	require.Equal(t, []types.ServerID{1, 2}, topo.ServerIDs())
	require.Equal(t, types.KeeperID(3), topo.MaxKeeperID())
	require.Equal(t, types.ServerID(2), topo.MaxServerID())
}

func TestNewInvalidID(t *testing.T) {
	_, err := New([]types.KeeperID{1, 0}, []types.ServerID{1})
	require.Error(t, err)

	_, err = New([]types.KeeperID{1}, []types.ServerID{-3})
	require.Error(t, err)
}

func TestKeeperAddRemove(t *testing.T) {
	topo, err := Generate(3, 1)
	require.NoError(t, err)

	kid, err := topo.AddKeeper()
	require.NoError(t, err)
	require.Equal(t, types.KeeperID(4), kid)
	require.True(t, topo.HasKeeper(4))

	require.NoError(t, topo.RemoveKeeper(4))
	require.False(t, topo.HasKeeper(4))
	require.Equal(t, types.KeeperID(4), topo.MaxKeeperID())

	// the removed ID is never handed out again
	kid, err = topo.AddKeeper()
	require.NoError(t, err)
	require.Equal(t, types.KeeperID(5), kid)
	require.Equal(t, []types.KeeperID{1, 2, 3, 5}, topo.KeeperIDs())
}

func TestServerAddRemove(t *testing.T) {
	topo, err := Generate(1, 2)
	require.NoError(t, err)

	require.NoError(t, topo.RemoveServer(1))
	sid, err := topo.AddServer()
	require.NoError(t, err)
	require.Equal(t, types.ServerID(3), sid)
	require.Equal(t, []types.ServerID{2, 3}, topo.ServerIDs())
	require.Equal(t, types.ServerID(3), topo.MaxServerID())
}

func TestRemoveUnknown(t *testing.T) {
	topo, err := Generate(3, 2)
	require.NoError(t, err)
	before := topo.Clone()

	err = topo.RemoveKeeper(7)
	require.ErrorIs(t, err, ErrNoSuchNode)
	require.ErrorIs(t, err, ErrNotFound)
	err = topo.RemoveServer(3)
	require.ErrorIs(t, err, ErrNoSuchNode)
	require.ErrorIs(t, err, ErrNotFound)

	require.Equal(t, before, topo)
}

func TestRemoveAll(t *testing.T) {
	topo, err := Generate(1, 1)
	require.NoError(t, err)
	require.NoError(t, topo.RemoveKeeper(1))
	require.NoError(t, topo.RemoveServer(1))

	assert.Empty(t, topo.KeeperIDs())
	assert.Empty(t, topo.ServerIDs())
	assert.NoError(t, topo.Validate())
}

func TestExhausted(t *testing.T) {
	topo, err := New([]types.KeeperID{types.MaxKeeperID}, []types.ServerID{types.MaxServerID})
	require.NoError(t, err)

	_, err = topo.AddKeeper()
	require.ErrorIs(t, err, ErrExhausted)
	_, err = topo.AddServer()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestAccessorsReturnCopies(t *testing.T) {
	topo, err := Generate(2, 2)
	require.NoError(t, err)

	kids := topo.KeeperIDs()
	kids[0] = 100
	require.Equal(t, []types.KeeperID{1, 2}, topo.KeeperIDs())

	clone := topo.Clone()
	_, err = clone.AddServer()
	require.NoError(t, err)
	require.Equal(t, types.ServerID(2), topo.MaxServerID())
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		data string
		ok   bool
	}{
		{
			name: "Valid",
			data: `{"keeper_ids":[1,2,3],"max_keeper_id":3,"server_ids":[1,2],"max_server_id":2}`,
			ok:   true,
		},
		{
			name: "ValidAfterRemoval",
			data: `{"keeper_ids":[2],"max_keeper_id":5,"server_ids":[],"max_server_id":2}`,
			ok:   true,
		},
		{
			name: "KeeperAboveWatermark",
			data: `{"keeper_ids":[1,4],"max_keeper_id":3,"server_ids":[1],"max_server_id":1}`,
		},
		{
			name: "ServerAboveWatermark",
			data: `{"keeper_ids":[1],"max_keeper_id":1,"server_ids":[2],"max_server_id":1}`,
		},
		{
			name: "Duplicated",
			data: `{"keeper_ids":[1,1],"max_keeper_id":1,"server_ids":[1],"max_server_id":1}`,
		},
		{
			name: "ZeroID",
			data: `{"keeper_ids":[0],"max_keeper_id":1,"server_ids":[1],"max_server_id":1}`,
		},
		{
			name: "NegativeWatermark",
			data: `{"keeper_ids":[],"max_keeper_id":-1,"server_ids":[],"max_server_id":0}`,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var topo Topology
			require.NoError(t, json.Unmarshal([]byte(tc.data), &topo))
			if tc.ok {
				require.NoError(t, topo.Validate())
			} else {
				require.Error(t, topo.Validate())
			}
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	topo, err := Generate(3, 2)
	require.NoError(t, err)
	data, err := json.Marshal(topo)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"keeper_ids":[1,2,3],"max_keeper_id":3,"server_ids":[1,2],"max_server_id":2}`,
		string(data),
	)

	require.NoError(t, topo.RemoveServer(1))
	require.NoError(t, topo.RemoveServer(2))
	data, err = json.Marshal(topo)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"keeper_ids":[1,2,3],"max_keeper_id":3,"server_ids":[],"max_server_id":2}`,
		string(data),
	)
}

// applyOps interprets every op as one of add keeper, add server, remove
// keeper and remove server, and checks that no ID is allocated twice and
// that watermarks never decrease.
func applyOps(ops []int) error {
	topo, err := Generate(3, 2)
	if err != nil {
		return err
	}
	issuedKeepers := map[types.KeeperID]bool{1: true, 2: true, 3: true}
	issuedServers := map[types.ServerID]bool{1: true, 2: true}

	for _, op := range ops {
		prevMaxKeeper, prevMaxServer := topo.MaxKeeperID(), topo.MaxServerID()
		switch op % 4 {
		case 0:
			kid, err := topo.AddKeeper()
			if err != nil {
				return err
			}
			if issuedKeepers[kid] {
				return errors.Errorf("keeper %d issued twice", kid)
			}
			issuedKeepers[kid] = true
		case 1:
			sid, err := topo.AddServer()
			if err != nil {
				return err
			}
			if issuedServers[sid] {
				return errors.Errorf("server %d issued twice", sid)
			}
			issuedServers[sid] = true
		case 2:
			kids := topo.KeeperIDs()
			if len(kids) == 0 {
				continue
			}
			if err := topo.RemoveKeeper(kids[(op/4)%len(kids)]); err != nil {
				return err
			}
		case 3:
			sids := topo.ServerIDs()
			if len(sids) == 0 {
				continue
			}
			if err := topo.RemoveServer(sids[(op/4)%len(sids)]); err != nil {
				return err
			}
		}
		if topo.MaxKeeperID() < prevMaxKeeper || topo.MaxServerID() < prevMaxServer {
			return errors.New("watermark decreased")
		}
		if err := topo.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func TestIDMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identifiers are never issued twice", prop.ForAll(
		func(ops []int) bool {
			return applyOps(ops) == nil
		},
		gen.SliceOf(gen.IntRange(0, 1<<10)),
	))

	properties.Property("json round-trip preserves topology", prop.ForAll(
		func(ops []int) bool {
			topo, err := Generate(1, 1)
			if err != nil {
				return false
			}
			for _, op := range ops {
				switch op % 3 {
				case 0:
					_, _ = topo.AddKeeper()
				case 1:
					_, _ = topo.AddServer()
				case 2:
					if kids := topo.KeeperIDs(); len(kids) > 0 {
						_ = topo.RemoveKeeper(kids[0])
					}
				}
			}
			data, err := json.Marshal(topo)
			if err != nil {
				return false
			}
			var decoded Topology
			if err := json.Unmarshal(data, &decoded); err != nil {
				return false
			}
			return assert.ObjectsAreEqual(topo, &decoded)
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
