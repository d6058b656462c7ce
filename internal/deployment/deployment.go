package deployment

//go:generate mockgen -self_package github.com/kakao/chward/internal/deployment -package deployment -destination deployment_mock.go . TopologyStore,ConfigProjector,ProcessSupervisor,MembershipFetcher

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/kakao/chward/internal/keeper"
	"github.com/kakao/chward/internal/placement"
	"github.com/kakao/chward/internal/topology"
	"github.com/kakao/chward/pkg/types"
	"github.com/kakao/chward/pkg/util/fputil"
)

// TopologyStore loads and saves the topology record of a deployment.
type TopologyStore interface {
	Load() (*topology.Topology, error)
	Save(topo *topology.Topology) error
}

// ConfigProjector writes the configuration of a node derived from a topology.
type ConfigProjector interface {
	Project(ctx context.Context, kind types.NodeKind, id int32, topo *topology.Topology) error
}

// ProcessSupervisor starts and stops node processes.
type ProcessSupervisor interface {
	Start(ctx context.Context, kind types.NodeKind, id int32) error
	Stop(ctx context.Context, kind types.NodeKind, id int32) error
}

// MembershipFetcher reads the ensemble membership from a keeper.
type MembershipFetcher interface {
	FetchMembership(ctx context.Context, addr string) (keeper.Membership, error)
}

const (
	OperationAddKeeper       = "add-keeper"
	OperationRemoveKeeper    = "remove-keeper"
	OperationAddServer       = "add-server"
	OperationRemoveServer    = "remove-server"
	OperationGenerateCluster = "gen-config"
	OperationDeploy          = "deploy"
	OperationTeardown        = "teardown"
)

// Deployment changes the membership of a local ClickHouse cluster and its
// keeper ensemble. Each membership change updates the topology record,
// renders configurations, and starts or stops processes in a fixed order.
//
// Deployment is not safe for concurrent use, and two processes must not
// operate on the same deployment directory at once.
type Deployment struct {
	config
}

func New(opts ...Option) (*Deployment, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Deployment{config: cfg}, nil
}

// AddKeeper allocates a new keeper and joins it to the ensemble. The new
// keeper is started before the other keepers learn about it. A retry after a
// failure allocates another ID.
func (d *Deployment) AddKeeper(ctx context.Context) (types.KeeperID, Report, error) {
	topo, err := d.store.Load()
	if err != nil {
		return types.InvalidKeeperID, Report{Operation: OperationAddKeeper}, err
	}
	kid, err := topo.AddKeeper()
	if err != nil {
		return types.InvalidKeeperID, Report{Operation: OperationAddKeeper}, err
	}
	d.logger.Info("adding keeper", zap.Int32("kid", int32(kid)))

	s := newSaga(OperationAddKeeper)
	d.persist(s, topo)
	d.project(s, types.NodeKindKeeper, int32(kid), topo)
	d.start(s, types.NodeKindKeeper, int32(kid))
	for _, id := range topo.KeeperIDs() {
		if id != kid {
			d.project(s, types.NodeKindKeeper, int32(id), topo)
		}
	}
	d.projectServers(s, topo)

	report, err := s.run(ctx, d.logger)
	return kid, report, err
}

// RemoveKeeper removes keeper kid from the ensemble. The remaining keepers
// learn about the removal before the keeper is stopped. If kid is not a live
// keeper, it returns an error wrapping topology.ErrNoSuchNode and changes
// nothing.
func (d *Deployment) RemoveKeeper(ctx context.Context, kid types.KeeperID) (Report, error) {
	topo, err := d.store.Load()
	if err != nil {
		return Report{Operation: OperationRemoveKeeper}, err
	}
	if err := topo.RemoveKeeper(kid); err != nil {
		return Report{Operation: OperationRemoveKeeper}, err
	}
	d.logger.Info("removing keeper", zap.Int32("kid", int32(kid)))

	s := newSaga(OperationRemoveKeeper)
	d.persist(s, topo)
	for _, id := range topo.KeeperIDs() {
		d.project(s, types.NodeKindKeeper, int32(id), topo)
	}
	d.stop(s, types.NodeKindKeeper, int32(kid))
	d.projectServers(s, topo)
	return s.run(ctx, d.logger)
}

// AddServer allocates a new server. Every server learns about the new replica
// before it is started.
func (d *Deployment) AddServer(ctx context.Context) (types.ServerID, Report, error) {
	topo, err := d.store.Load()
	if err != nil {
		return types.InvalidServerID, Report{Operation: OperationAddServer}, err
	}
	sid, err := topo.AddServer()
	if err != nil {
		return types.InvalidServerID, Report{Operation: OperationAddServer}, err
	}
	d.logger.Info("adding server", zap.Int32("sid", int32(sid)))

	s := newSaga(OperationAddServer)
	d.persist(s, topo)
	d.projectServers(s, topo)
	d.start(s, types.NodeKindServer, int32(sid))

	report, err := s.run(ctx, d.logger)
	return sid, report, err
}

// RemoveServer removes server sid. The remaining servers learn about the
// removal before the server is stopped. If sid is not a live server, it
// returns an error wrapping topology.ErrNoSuchNode and changes nothing.
func (d *Deployment) RemoveServer(ctx context.Context, sid types.ServerID) (Report, error) {
	topo, err := d.store.Load()
	if err != nil {
		return Report{Operation: OperationRemoveServer}, err
	}
	if err := topo.RemoveServer(sid); err != nil {
		return Report{Operation: OperationRemoveServer}, err
	}
	d.logger.Info("removing server", zap.Int32("sid", int32(sid)))

	s := newSaga(OperationRemoveServer)
	d.persist(s, topo)
	d.projectServers(s, topo)
	d.stop(s, types.NodeKindServer, int32(sid))
	return s.run(ctx, d.logger)
}

// GenerateCluster lays out a new deployment with keepers 1..numKeepers and
// servers 1..numServers. It writes every configuration and the topology
// record but starts nothing; see Deploy.
func (d *Deployment) GenerateCluster(ctx context.Context, numKeepers, numServers int) (Report, error) {
	topo, err := topology.Generate(numKeepers, numServers)
	if err != nil {
		return Report{Operation: OperationGenerateCluster}, err
	}
	d.logger.Info("generating cluster",
		zap.Int("keepers", numKeepers),
		zap.Int("servers", numServers),
		zap.String("path", d.layout.Root()),
	)

	s := newSaga(OperationGenerateCluster)
	s.add("create "+d.layout.Root(), func(context.Context) error {
		return errors.WithStack(os.MkdirAll(d.layout.Root(), 0o755))
	})
	for _, kid := range topo.KeeperIDs() {
		d.project(s, types.NodeKindKeeper, int32(kid), topo)
	}
	d.projectServers(s, topo)
	d.persist(s, topo)
	return s.run(ctx, d.logger)
}

// Deploy starts every keeper and then every server found in the deployment
// directory. It does not wait for the ensemble to be healthy before starting
// servers.
func (d *Deployment) Deploy(ctx context.Context) (Report, error) {
	keeperIDs, err := d.scan(types.NodeKindKeeper)
	if err != nil {
		return Report{Operation: OperationDeploy}, err
	}
	serverIDs, err := d.scan(types.NodeKindServer)
	if err != nil {
		return Report{Operation: OperationDeploy}, err
	}

	s := newSaga(OperationDeploy)
	for _, kid := range keeperIDs {
		d.start(s, types.NodeKindKeeper, kid)
	}
	for _, sid := range serverIDs {
		d.start(s, types.NodeKindServer, sid)
	}
	return s.run(ctx, d.logger)
}

// Teardown stops every keeper and then every server of the topology. Failing
// to stop a node is logged and does not stop the teardown. The returned
// report lists the nodes that were stopped.
func (d *Deployment) Teardown(ctx context.Context) (Report, error) {
	report := Report{Operation: OperationTeardown}
	topo, err := d.store.Load()
	if err != nil {
		return report, err
	}

	type node struct {
		kind types.NodeKind
		id   int32
	}
	var nodes []node
	for _, kid := range topo.KeeperIDs() {
		nodes = append(nodes, node{kind: types.NodeKindKeeper, id: int32(kid)})
	}
	for _, sid := range topo.ServerIDs() {
		nodes = append(nodes, node{kind: types.NodeKindServer, id: int32(sid)})
	}

	var errs error
	for _, n := range nodes {
		name := types.NodeName(n.kind, n.id)
		if err := d.supervisor.Stop(ctx, n.kind, n.id); err != nil {
			errs = multierr.Append(errs, errors.WithMessage(err, name))
			continue
		}
		report.Completed = append(report.Completed, "stop "+name)
	}
	if errs != nil {
		d.logger.Warn("teardown incomplete", zap.Errors("errors", multierr.Errors(errs)))
	}
	return report, nil
}

// Show returns the topology of the deployment.
func (d *Deployment) Show(context.Context) (*topology.Topology, error) {
	return d.store.Load()
}

// KeeperMembership returns the ensemble membership as seen by keeper kid.
func (d *Deployment) KeeperMembership(ctx context.Context, kid types.KeeperID) (keeper.Membership, error) {
	addr, err := d.layout.KeeperAddress(kid)
	if err != nil {
		return nil, err
	}
	return d.fetcher.FetchMembership(ctx, addr)
}

func (d *Deployment) persist(s *saga, topo *topology.Topology) {
	s.add("persist topology", func(context.Context) error {
		return d.store.Save(topo)
	})
}

func (d *Deployment) project(s *saga, kind types.NodeKind, id int32, topo *topology.Topology) {
	s.add("project "+types.NodeName(kind, id), func(ctx context.Context) error {
		return d.projector.Project(ctx, kind, id, topo)
	})
}

func (d *Deployment) projectServers(s *saga, topo *topology.Topology) {
	for _, sid := range topo.ServerIDs() {
		d.project(s, types.NodeKindServer, int32(sid), topo)
	}
}

func (d *Deployment) start(s *saga, kind types.NodeKind, id int32) {
	s.add("start "+types.NodeName(kind, id), func(ctx context.Context) error {
		return d.supervisor.Start(ctx, kind, id)
	})
}

func (d *Deployment) stop(s *saga, kind types.NodeKind, id int32) {
	s.add("stop "+types.NodeName(kind, id), func(ctx context.Context) error {
		return d.supervisor.Stop(ctx, kind, id)
	})
}

// scan returns the IDs of the node directories of the given kind in the
// deployment directory in ascending order.
func (d *Deployment) scan(kind types.NodeKind) ([]int32, error) {
	dirs, err := fputil.SubdirsWithPrefix(d.layout.Root(), kind.String()+"-")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	ids := make([]int32, 0, len(dirs))
	for _, dir := range dirs {
		k, id, ok := placement.ParseNodeDirName(filepath.Base(dir))
		if !ok || k != kind {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
