package topology

import (
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/kakao/chward/pkg/types"
)

var (
	// ErrNotFound is returned when either the topology record or a node
	// in it does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoSuchNode is returned when removing a node that is not live. It
	// is in the ErrNotFound class.
	ErrNoSuchNode = errors.WithMessage(ErrNotFound, "no such node")
	// ErrCorrupt is returned when the topology record cannot be decoded or
	// breaks the watermark invariant.
	ErrCorrupt = errors.New("corrupt")
	// ErrExhausted is returned when a watermark cannot grow anymore.
	ErrExhausted = errors.New("identifiers exhausted")
)

// Topology tracks which keepers and servers exist in a deployment.
//
// Each kind of node has a live set and a watermark. The watermark is the
// largest ID ever allocated, and new IDs are always allocated above it, hence
// no ID is reused even after removal. Topology has no I/O; see Store.
type Topology struct {
	keeperIDs   []types.KeeperID
	maxKeeperID types.KeeperID
	serverIDs   []types.ServerID
	maxServerID types.ServerID
}

// New returns a topology whose live sets are the given IDs and whose
// watermarks are the largest of them.
func New(keeperIDs []types.KeeperID, serverIDs []types.ServerID) (*Topology, error) {
	t := &Topology{
		keeperIDs: make([]types.KeeperID, 0, len(keeperIDs)),
		serverIDs: make([]types.ServerID, 0, len(serverIDs)),
	}
	for _, kid := range keeperIDs {
		if kid.Invalid() {
			return nil, errors.Errorf("topology: invalid keeper id %d", kid)
		}
		t.keeperIDs = insertSorted(t.keeperIDs, kid)
		if kid > t.maxKeeperID {
			t.maxKeeperID = kid
		}
	}
	for _, sid := range serverIDs {
		if sid.Invalid() {
			return nil, errors.Errorf("topology: invalid server id %d", sid)
		}
		t.serverIDs = insertSorted(t.serverIDs, sid)
		if sid > t.maxServerID {
			t.maxServerID = sid
		}
	}
	return t, nil
}

// Generate returns the initial topology of a new deployment: keepers
// 1..numKeepers and servers 1..numServers.
func Generate(numKeepers, numServers int) (*Topology, error) {
	if numKeepers < 1 || int64(numKeepers) > int64(types.MaxKeeperID) {
		return nil, errors.Errorf("topology: invalid number of keepers %d", numKeepers)
	}
	if numServers < 1 || int64(numServers) > int64(types.MaxServerID) {
		return nil, errors.Errorf("topology: invalid number of servers %d", numServers)
	}
	keeperIDs := make([]types.KeeperID, 0, numKeepers)
	for i := 1; i <= numKeepers; i++ {
		keeperIDs = append(keeperIDs, types.KeeperID(i))
	}
	serverIDs := make([]types.ServerID, 0, numServers)
	for i := 1; i <= numServers; i++ {
		serverIDs = append(serverIDs, types.ServerID(i))
	}
	return New(keeperIDs, serverIDs)
}

// AddKeeper allocates the next keeper ID and inserts it into the live set.
func (t *Topology) AddKeeper() (types.KeeperID, error) {
	if t.maxKeeperID == types.MaxKeeperID {
		return types.InvalidKeeperID, errors.Wrap(ErrExhausted, "topology: keeper")
	}
	t.maxKeeperID++
	t.keeperIDs = insertSorted(t.keeperIDs, t.maxKeeperID)
	return t.maxKeeperID, nil
}

// RemoveKeeper deletes the keeper from the live set. The watermark is left
// untouched.
func (t *Topology) RemoveKeeper(kid types.KeeperID) error {
	idx, ok := slices.BinarySearch(t.keeperIDs, kid)
	if !ok {
		return errors.Wrapf(ErrNoSuchNode, "keeper %d", kid)
	}
	t.keeperIDs = slices.Delete(t.keeperIDs, idx, idx+1)
	return nil
}

// AddServer allocates the next server ID and inserts it into the live set.
func (t *Topology) AddServer() (types.ServerID, error) {
	if t.maxServerID == types.MaxServerID {
		return types.InvalidServerID, errors.Wrap(ErrExhausted, "topology: server")
	}
	t.maxServerID++
	t.serverIDs = insertSorted(t.serverIDs, t.maxServerID)
	return t.maxServerID, nil
}

// RemoveServer deletes the server from the live set. The watermark is left
// untouched.
func (t *Topology) RemoveServer(sid types.ServerID) error {
	idx, ok := slices.BinarySearch(t.serverIDs, sid)
	if !ok {
		return errors.Wrapf(ErrNoSuchNode, "replica %d", sid)
	}
	t.serverIDs = slices.Delete(t.serverIDs, idx, idx+1)
	return nil
}

// KeeperIDs returns live keeper IDs in ascending order. The returned slice
// belongs to the caller.
func (t *Topology) KeeperIDs() []types.KeeperID {
	return slices.Clone(t.keeperIDs)
}

// ServerIDs returns live server IDs in ascending order. The returned slice
// belongs to the caller.
func (t *Topology) ServerIDs() []types.ServerID {
	return slices.Clone(t.serverIDs)
}

func (t *Topology) MaxKeeperID() types.KeeperID {
	return t.maxKeeperID
}

func (t *Topology) MaxServerID() types.ServerID {
	return t.maxServerID
}

func (t *Topology) HasKeeper(kid types.KeeperID) bool {
	_, ok := slices.BinarySearch(t.keeperIDs, kid)
	return ok
}

func (t *Topology) HasServer(sid types.ServerID) bool {
	_, ok := slices.BinarySearch(t.serverIDs, sid)
	return ok
}

// Clone returns a deep copy of the topology.
func (t *Topology) Clone() *Topology {
	return &Topology{
		keeperIDs:   t.KeeperIDs(),
		maxKeeperID: t.maxKeeperID,
		serverIDs:   t.ServerIDs(),
		maxServerID: t.maxServerID,
	}
}

// Validate checks that live sets are sorted, hold valid and unique IDs, and
// never exceed their watermarks.
func (t *Topology) Validate() error {
	if t.maxKeeperID < types.InvalidKeeperID || t.maxServerID < types.InvalidServerID {
		return errors.New("negative watermark")
	}
	for i, kid := range t.keeperIDs {
		if kid.Invalid() {
			return errors.Errorf("invalid keeper id %d", kid)
		}
		if kid > t.maxKeeperID {
			return errors.Errorf("keeper id %d above watermark %d", kid, t.maxKeeperID)
		}
		if i > 0 && t.keeperIDs[i-1] >= kid {
			return errors.Errorf("keeper ids not strictly ascending at %d", kid)
		}
	}
	for i, sid := range t.serverIDs {
		if sid.Invalid() {
			return errors.Errorf("invalid server id %d", sid)
		}
		if sid > t.maxServerID {
			return errors.Errorf("server id %d above watermark %d", sid, t.maxServerID)
		}
		if i > 0 && t.serverIDs[i-1] >= sid {
			return errors.Errorf("server ids not strictly ascending at %d", sid)
		}
	}
	return nil
}

type topologyJSON struct {
	KeeperIDs   []types.KeeperID `json:"keeper_ids"`
	MaxKeeperID types.KeeperID   `json:"max_keeper_id"`
	ServerIDs   []types.ServerID `json:"server_ids"`
	MaxServerID types.ServerID   `json:"max_server_id"`
}

var (
	_ json.Marshaler   = (*Topology)(nil)
	_ json.Unmarshaler = (*Topology)(nil)
)

func (t *Topology) MarshalJSON() ([]byte, error) {
	return json.Marshal(topologyJSON{
		KeeperIDs:   nonNil(t.keeperIDs),
		MaxKeeperID: t.maxKeeperID,
		ServerIDs:   nonNil(t.serverIDs),
		MaxServerID: t.maxServerID,
	})
}

// UnmarshalJSON decodes the record. Live sets are sorted, but the invariants
// are not checked here; call Validate.
func (t *Topology) UnmarshalJSON(data []byte) error {
	var tj topologyJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}
	t.keeperIDs = nonNil(tj.KeeperIDs)
	slices.Sort(t.keeperIDs)
	t.maxKeeperID = tj.MaxKeeperID
	t.serverIDs = nonNil(tj.ServerIDs)
	slices.Sort(t.serverIDs)
	t.maxServerID = tj.MaxServerID
	return nil
}

func insertSorted[T ~int32](ids []T, id T) []T {
	idx, ok := slices.BinarySearch(ids, id)
	if ok {
		return ids
	}
	return slices.Insert(ids, idx, id)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
