package types

import (
	"fmt"
	"math"
	"strconv"
)

// KeeperID identifies a member of the keeper ensemble. It is never reused
// within a deployment, even after the keeper is removed.
type KeeperID int32

const (
	InvalidKeeperID = KeeperID(0)
	MinKeeperID     = KeeperID(1)
	MaxKeeperID     = KeeperID(math.MaxInt32)
)

var _ fmt.Stringer = (*KeeperID)(nil)

func ParseKeeperID(s string) (KeeperID, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	return KeeperID(id), err
}

func (kid KeeperID) String() string {
	return strconv.FormatInt(int64(kid), 10)
}

func (kid KeeperID) Invalid() bool {
	return kid < MinKeeperID
}

// ServerID identifies a ClickHouse server replica. Like KeeperID, it is never
// reused within a deployment.
type ServerID int32

const (
	InvalidServerID = ServerID(0)
	MinServerID     = ServerID(1)
	MaxServerID     = ServerID(math.MaxInt32)
)

var _ fmt.Stringer = (*ServerID)(nil)

func ParseServerID(s string) (ServerID, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	return ServerID(id), err
}

func (sid ServerID) String() string {
	return strconv.FormatInt(int64(sid), 10)
}

func (sid ServerID) Invalid() bool {
	return sid < MinServerID
}

// NodeKind distinguishes keeper nodes from server nodes. Placement, process
// handling and configuration all branch on it.
type NodeKind uint8

const (
	NodeKindInvalid NodeKind = iota
	NodeKindKeeper
	NodeKindServer
)

var _ fmt.Stringer = NodeKind(0)

func (kind NodeKind) String() string {
	switch kind {
	case NodeKindKeeper:
		return "keeper"
	case NodeKindServer:
		return "clickhouse"
	default:
		return "invalid"
	}
}

func (kind NodeKind) Invalid() bool {
	return kind != NodeKindKeeper && kind != NodeKindServer
}

// NodeName returns the name of a node, for instance, "keeper-1" or
// "clickhouse-2". Node directories are named after it.
func NodeName(kind NodeKind, id int32) string {
	return kind.String() + "-" + strconv.FormatInt(int64(id), 10)
}
