// Package cluster provides commands operating on a deployment as a whole.
package cluster

import (
	"context"

	"github.com/kakao/chward/internal/chwardctl"
	"github.com/kakao/chward/internal/chwardctl/result"
	"github.com/kakao/chward/internal/deployment"
	"github.com/kakao/chward/pkg/types"
)

const (
	resourceReport   = "report"
	resourceTopology = "topology"
	resourceAudit    = "audit"
)

// Generate returns a function to generate the configurations of a new
// cluster with numKeepers keepers and numServers servers.
//
// The result of the function executed successfully serializes to follow:
//
//	{
//		"data": {
//			"kind": "report",
//			"items": [
//				{"operation": "gen-config", "completed": ["create ...", ...]}
//			]
//		}
//	}
//
// If it fails, the error names the failed step and the completed ones.
func Generate(numKeepers, numServers int) chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		return reportResult(o.GenerateCluster(ctx, numKeepers, numServers))
	}
}

// Deploy returns a function to start every node found in the deployment
// directory.
func Deploy() chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		return reportResult(o.Deploy(ctx))
	}
}

// Teardown returns a function to stop every node of the topology. Nodes that
// fail to stop do not make it fail.
func Teardown() chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		return reportResult(o.Teardown(ctx))
	}
}

// Show returns a function to describe the topology.
//
// The result of the function executed successfully serializes to follow:
//
//	{
//		"data": {
//			"kind": "topology",
//			"items": [
//				{"keeper_ids": [1, 2, 3], "max_keeper_id": 3, "server_ids": [1, 2], "max_server_id": 2}
//			]
//		}
//	}
func Show() chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		res := result.New(resourceTopology)
		topo, err := o.Show(ctx)
		if err != nil {
			res.AddErrors(err)
			return res
		}
		res.AddDataItems(topo)
		return res
	}
}

// AuditItem is an audit report with its verdict.
type AuditItem struct {
	deployment.AuditReport
	Consistent bool `json:"consistent"`
}

// Audit returns a function to compare the membership seen by keeper kid
// with the topology.
func Audit(kid types.KeeperID) chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		res := result.New(resourceAudit)
		report, err := o.Audit(ctx, kid)
		if err != nil {
			res.AddErrors(err)
			return res
		}
		res.AddDataItems(AuditItem{
			AuditReport: report,
			Consistent:  report.Consistent(),
		})
		return res
	}
}

func reportResult(report deployment.Report, err error) *result.Result {
	res := result.New(resourceReport)
	if err != nil {
		res.AddErrors(err)
		return res
	}
	res.AddDataItems(report)
	return res
}
