// Package placement derives where a node listens and where its files live.
//
// Everything here is a pure function of the node kind, the node ID and a
// static table of base ports, so any component can compute a node's placement
// independently without consulting shared state.
package placement

import (
	"math"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kakao/chward/pkg/types"
)

const (
	DefaultListenHost = "::1"

	KeeperConfigFileName = "keeper-config.xml"
	KeeperPIDFileName    = "keeper.pid"
	ServerConfigFileName = "clickhouse-config.xml"
	ServerPIDFileName    = "clickhouse.pid"

	logDirName = "logs"
)

var ErrPortOutOfRange = errors.New("port out of range")

// BasePorts is the static base-port table. A node listens on the base port
// of its kind plus its ID.
type BasePorts struct {
	Keeper                uint16
	Raft                  uint16
	ServerTCP             uint16
	ServerHTTP            uint16
	ServerInterserverHTTP uint16
}

var DefaultBasePorts = BasePorts{
	Keeper:                20000,
	Raft:                  21000,
	ServerTCP:             22000,
	ServerHTTP:            23000,
	ServerInterserverHTTP: 24000,
}

// KeeperPlacement is where a keeper listens and keeps its files.
type KeeperPlacement struct {
	ID                  types.KeeperID
	Dir                 string
	ConfigPath          string
	PIDFile             string
	LogFile             string
	ErrorLogFile        string
	LogStoragePath      string
	SnapshotStoragePath string
	ClientPort          uint16
	RaftPort            uint16
}

// ServerPlacement is where a ClickHouse server listens and keeps its files.
type ServerPlacement struct {
	ID                  types.ServerID
	Dir                 string
	ConfigPath          string
	PIDFile             string
	LogFile             string
	ErrorLogFile        string
	DataPath            string
	TCPPort             uint16
	HTTPPort            uint16
	InterserverHTTPPort uint16
}

// Layout maps nodes of a deployment rooted at a directory to placements.
type Layout struct {
	root       string
	basePorts  BasePorts
	listenHost string
}

func NewLayout(root string, basePorts BasePorts, listenHost string) Layout {
	if listenHost == "" {
		listenHost = DefaultListenHost
	}
	return Layout{root: root, basePorts: basePorts, listenHost: listenHost}
}

func (l Layout) Root() string {
	return l.root
}

func (l Layout) ListenHost() string {
	return l.listenHost
}

// Dir returns the directory of a node, for instance, <root>/keeper-1.
func (l Layout) Dir(kind types.NodeKind, id int32) string {
	return filepath.Join(l.root, types.NodeName(kind, id))
}

// ConfigPath returns the path of the configuration file of a node.
func (l Layout) ConfigPath(kind types.NodeKind, id int32) string {
	return ConfigPathInDir(kind, l.Dir(kind, id))
}

// PIDFile returns the path of the pid file of a node.
func (l Layout) PIDFile(kind types.NodeKind, id int32) string {
	return PIDFileInDir(kind, l.Dir(kind, id))
}

// ConfigPathInDir returns the path of the configuration file in a node
// directory.
func ConfigPathInDir(kind types.NodeKind, dir string) string {
	if kind == types.NodeKindKeeper {
		return filepath.Join(dir, KeeperConfigFileName)
	}
	return filepath.Join(dir, ServerConfigFileName)
}

// PIDFileInDir returns the path of the pid file in a node directory.
func PIDFileInDir(kind types.NodeKind, dir string) string {
	if kind == types.NodeKindKeeper {
		return filepath.Join(dir, KeeperPIDFileName)
	}
	return filepath.Join(dir, ServerPIDFileName)
}

func (l Layout) Keeper(kid types.KeeperID) (KeeperPlacement, error) {
	if kid.Invalid() {
		return KeeperPlacement{}, errors.Errorf("placement: invalid keeper id %d", kid)
	}
	clientPort, err := port(l.basePorts.Keeper, int32(kid))
	if err != nil {
		return KeeperPlacement{}, errors.WithMessagef(err, "placement: keeper %d client port", kid)
	}
	raftPort, err := port(l.basePorts.Raft, int32(kid))
	if err != nil {
		return KeeperPlacement{}, errors.WithMessagef(err, "placement: keeper %d raft port", kid)
	}
	dir := l.Dir(types.NodeKindKeeper, int32(kid))
	logs := filepath.Join(dir, logDirName)
	return KeeperPlacement{
		ID:                  kid,
		Dir:                 dir,
		ConfigPath:          filepath.Join(dir, KeeperConfigFileName),
		PIDFile:             filepath.Join(dir, KeeperPIDFileName),
		LogFile:             filepath.Join(logs, "clickhouse-keeper.log"),
		ErrorLogFile:        filepath.Join(logs, "clickhouse-keeper.err.log"),
		LogStoragePath:      filepath.Join(dir, "coordination", "log"),
		SnapshotStoragePath: filepath.Join(dir, "coordination", "snapshots"),
		ClientPort:          clientPort,
		RaftPort:            raftPort,
	}, nil
}

func (l Layout) Server(sid types.ServerID) (ServerPlacement, error) {
	if sid.Invalid() {
		return ServerPlacement{}, errors.Errorf("placement: invalid server id %d", sid)
	}
	tcpPort, err := port(l.basePorts.ServerTCP, int32(sid))
	if err != nil {
		return ServerPlacement{}, errors.WithMessagef(err, "placement: server %d tcp port", sid)
	}
	httpPort, err := port(l.basePorts.ServerHTTP, int32(sid))
	if err != nil {
		return ServerPlacement{}, errors.WithMessagef(err, "placement: server %d http port", sid)
	}
	interserverPort, err := port(l.basePorts.ServerInterserverHTTP, int32(sid))
	if err != nil {
		return ServerPlacement{}, errors.WithMessagef(err, "placement: server %d interserver http port", sid)
	}
	dir := l.Dir(types.NodeKindServer, int32(sid))
	logs := filepath.Join(dir, logDirName)
	return ServerPlacement{
		ID:                  sid,
		Dir:                 dir,
		ConfigPath:          filepath.Join(dir, ServerConfigFileName),
		PIDFile:             filepath.Join(dir, ServerPIDFileName),
		LogFile:             filepath.Join(logs, "clickhouse.log"),
		ErrorLogFile:        filepath.Join(logs, "clickhouse.err.log"),
		DataPath:            filepath.Join(dir, "data"),
		TCPPort:             tcpPort,
		HTTPPort:            httpPort,
		InterserverHTTPPort: interserverPort,
	}, nil
}

// KeeperAddress returns the client address of a keeper, for instance,
// "[::1]:20001".
func (l Layout) KeeperAddress(kid types.KeeperID) (string, error) {
	p, err := l.Keeper(kid)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(l.listenHost, strconv.Itoa(int(p.ClientPort))), nil
}

// KeeperRaftAddress returns the Raft address of a keeper.
func (l Layout) KeeperRaftAddress(kid types.KeeperID) (string, error) {
	p, err := l.Keeper(kid)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(l.listenHost, strconv.Itoa(int(p.RaftPort))), nil
}

// ParseNodeDirName parses a node directory name such as "keeper-3" back into
// its kind and ID.
func ParseNodeDirName(name string) (types.NodeKind, int32, bool) {
	for _, kind := range []types.NodeKind{types.NodeKindKeeper, types.NodeKindServer} {
		rest, ok := strings.CutPrefix(name, kind.String()+"-")
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(rest, 10, 32)
		// "keeper-01" is not the directory of keeper 1
		if err != nil || id < 1 || types.NodeName(kind, int32(id)) != name {
			return types.NodeKindInvalid, 0, false
		}
		return kind, int32(id), true
	}
	return types.NodeKindInvalid, 0, false
}

func port(base uint16, id int32) (uint16, error) {
	p := int64(base) + int64(id)
	if id < 1 || p > math.MaxUint16 {
		return 0, errors.Wrapf(ErrPortOutOfRange, "%d + %d", base, id)
	}
	return uint16(p), nil
}
