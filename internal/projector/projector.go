// Package projector renders the XML configuration of keepers and ClickHouse
// servers from the topology of a deployment.
package projector

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kakao/chward/internal/topology"
	"github.com/kakao/chward/pkg/types"
	"github.com/kakao/chward/pkg/util/fputil"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Projector renders and writes node configurations. A rendered configuration
// depends only on the node and the topology passed in.
type Projector struct {
	config
}

func New(opts ...Option) (*Projector, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Projector{config: cfg}, nil
}

// Render returns the configuration of the node given by kind and id.
func (p *Projector) Render(kind types.NodeKind, id int32, topo *topology.Topology) ([]byte, error) {
	switch kind {
	case types.NodeKindKeeper:
		return p.RenderKeeper(types.KeeperID(id), topo)
	case types.NodeKindServer:
		return p.RenderServer(types.ServerID(id), topo)
	default:
		return nil, errors.Errorf("projector: invalid node kind %d", kind)
	}
}

// Project renders the configuration of the node and writes it to its
// configuration path, creating the node directory and its log directory if
// needed. The file is replaced atomically.
func (p *Projector) Project(ctx context.Context, kind types.NodeKind, id int32, topo *topology.Topology) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := p.Render(kind, id, topo)
	if err != nil {
		return err
	}

	dir := p.layout.Dir(kind, id)
	if err := os.MkdirAll(filepath.Join(dir, "logs"), dirPerm); err != nil {
		return errors.WithMessagef(err, "projector: %s", types.NodeName(kind, id))
	}
	path := p.layout.ConfigPath(kind, id)
	if err := fputil.WriteFileAtomic(path, data, filePerm); err != nil {
		return errors.WithMessagef(err, "projector: %s", types.NodeName(kind, id))
	}
	p.logger.Debug("projected config",
		zap.Stringer("kind", kind),
		zap.Int32("id", id),
		zap.String("path", path),
	)
	return nil
}

// RenderKeeper renders the configuration of keeper kid. Its raft
// configuration lists every live keeper of topo.
func (p *Projector) RenderKeeper(kid types.KeeperID, topo *topology.Topology) ([]byte, error) {
	self, err := p.layout.Keeper(kid)
	if err != nil {
		return nil, err
	}

	keeperIDs := topo.KeeperIDs()
	raftServers := make([]raftServerXML, 0, len(keeperIDs))
	for _, id := range keeperIDs {
		peer, err := p.layout.Keeper(id)
		if err != nil {
			return nil, err
		}
		raftServers = append(raftServers, raftServerXML{
			ID:       int32(id),
			Hostname: p.layout.ListenHost(),
			Port:     peer.RaftPort,
		})
	}

	doc := keeperXML{
		Logger:     p.loggerXML(self.LogFile, self.ErrorLogFile),
		ListenHost: p.layout.ListenHost(),
		KeeperServer: keeperServerXML{
			TCPPort:             self.ClientPort,
			ServerID:            int32(kid),
			LogStoragePath:      self.LogStoragePath,
			SnapshotStoragePath: self.SnapshotStoragePath,
			CoordinationSettings: coordinationSettingsXML{
				OperationTimeoutMS: p.operationTimeout.Milliseconds(),
				SessionTimeoutMS:   p.sessionTimeout.Milliseconds(),
				RaftLogsLevel:      p.raftLogsLevel,
			},
			RaftConfiguration: raftServers,
		},
	}
	return marshal(doc)
}

// RenderServer renders the configuration of server sid. It lists every live
// server of topo as a replica of a single shard and every live keeper as a
// coordination node.
func (p *Projector) RenderServer(sid types.ServerID, topo *topology.Topology) ([]byte, error) {
	self, err := p.layout.Server(sid)
	if err != nil {
		return nil, err
	}

	serverIDs := topo.ServerIDs()
	replicas := make([]hostPortXML, 0, len(serverIDs))
	for _, id := range serverIDs {
		replica, err := p.layout.Server(id)
		if err != nil {
			return nil, err
		}
		replicas = append(replicas, hostPortXML{
			Host: p.layout.ListenHost(),
			Port: replica.TCPPort,
		})
	}

	keeperIDs := topo.KeeperIDs()
	nodes := make([]hostPortXML, 0, len(keeperIDs))
	for _, id := range keeperIDs {
		keeper, err := p.layout.Keeper(id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, hostPortXML{
			Host: bracketHost(p.layout.ListenHost()),
			Port: keeper.ClientPort,
		})
	}

	doc := serverXML{
		Logger:              p.loggerXML(self.LogFile, self.ErrorLogFile),
		Path:                self.DataPath,
		UserFilesPath:       filepath.Join(self.DataPath, "user_files"),
		DefaultProfile:      "default",
		FormatSchemaPath:    filepath.Join(self.DataPath, "format_schemas"),
		DisplayName:         fmt.Sprintf("%s-%d", p.clusterName, sid),
		ListenHost:          p.layout.ListenHost(),
		HTTPPort:            self.HTTPPort,
		TCPPort:             self.TCPPort,
		InterserverHTTPPort: self.InterserverHTTPPort,
		InterserverHTTPHost: p.layout.ListenHost(),
		DistributedDDL: distributedDDLXML{
			TaskMaxLifetime:    604800,
			CleanupDelayPeriod: 60,
			MaxTasksInQueue:    1000,
		},
		Macros: macrosXML{
			Shard:   DefaultShard,
			Replica: int32(sid),
			Cluster: p.clusterName,
		},
		RemoteServers: remoteServersXML{
			Replace: true,
			Cluster: clusterXML{
				XMLName: xml.Name{Local: p.clusterName},
				Secret:  p.secret,
				Shard: shardXML{
					InternalReplication: true,
					Replicas:            replicas,
				},
			},
		},
		ZooKeeper: nodes,
		OpenTelemetrySpans: openTelemetrySpansXML{
			Engine:                   "engine MergeTree partition by toYYYYMM(finish_date) order by (finish_date, finish_time_us, trace_id)",
			Database:                 "system",
			Table:                    "opentelemetry_span_log",
			FlushIntervalMillisecond: 7500,
		},
		MetricLog:      newMetricLogXML("metric_log"),
		AsyncMetricLog: newMetricLogXML("asynchronous_metric_log"),
	}
	doc.Profiles.Default.OpenTelemetryStartTraceProbability = 1
	doc.Profiles.Default.LoadBalancing = "random"
	doc.Users.Default.Networks = []string{"::/0"}
	doc.Users.Default.Profile = "default"
	doc.Users.Default.Quota = "default"
	doc.Quotas.Default.Interval.Duration = 3600
	return marshal(doc)
}

func (p *Projector) loggerXML(log, errorLog string) loggerXML {
	return loggerXML{
		Level:    p.logLevel,
		Log:      log,
		ErrorLog: errorLog,
		Size:     p.logSize,
		Count:    p.logCount,
	}
}

func marshal(doc any) ([]byte, error) {
	data, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "projector: marshal")
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')
	return out, nil
}

// bracketHost encloses an IPv6 literal in brackets, which coordination node
// entries of ClickHouse servers expect.
func bracketHost(host string) string {
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		return "[" + host + "]"
	}
	return host
}
