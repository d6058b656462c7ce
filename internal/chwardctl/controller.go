// Package chwardctl runs a single chward command against a deployment and
// prints its result as JSON.
package chwardctl

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/kakao/chward/internal/chwardctl/result"
	"github.com/kakao/chward/internal/deployment"
	"github.com/kakao/chward/internal/keeper"
	"github.com/kakao/chward/internal/topology"
	"github.com/kakao/chward/pkg/types"
)

//go:generate mockgen -self_package github.com/kakao/chward/internal/chwardctl -package chwardctl -destination chwardctl_mock.go . Orchestrator

// Orchestrator is the set of deployment operations commands run.
type Orchestrator interface {
	GenerateCluster(ctx context.Context, numKeepers, numServers int) (deployment.Report, error)
	Deploy(ctx context.Context) (deployment.Report, error)
	Teardown(ctx context.Context) (deployment.Report, error)
	Show(ctx context.Context) (*topology.Topology, error)
	AddKeeper(ctx context.Context) (types.KeeperID, deployment.Report, error)
	RemoveKeeper(ctx context.Context, kid types.KeeperID) (deployment.Report, error)
	AddServer(ctx context.Context) (types.ServerID, deployment.Report, error)
	RemoveServer(ctx context.Context, sid types.ServerID) (deployment.Report, error)
	KeeperMembership(ctx context.Context, kid types.KeeperID) (keeper.Membership, error)
	Audit(ctx context.Context, kid types.KeeperID) (deployment.AuditReport, error)
}

var _ Orchestrator = (*deployment.Deployment)(nil)

type ExecuteFunc func(context.Context, Orchestrator) *result.Result

type Controller struct {
	config
}

func New(opts ...Option) (*Controller, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	ctl := &Controller{config: cfg}
	return ctl, nil
}

func (c *Controller) Execute(ctx context.Context) *result.Result {
	res := c.executeFunc(ctx, c.orchestrator)
	if err := res.Err(); err != nil {
		c.logger.Debug("command failed", zap.Error(err))
	}
	return res
}

func (c *Controller) Print(res *result.Result, writer io.Writer) error {
	return Print(res, c.pretty, writer)
}
