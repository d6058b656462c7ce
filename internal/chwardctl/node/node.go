// Package node provides commands adding, removing and inspecting single
// keepers and servers.
package node

import (
	"context"

	"github.com/kakao/chward/internal/chwardctl"
	"github.com/kakao/chward/internal/chwardctl/result"
	"github.com/kakao/chward/internal/deployment"
	"github.com/kakao/chward/internal/keeper"
	"github.com/kakao/chward/pkg/types"
)

const (
	resourceKeeper     = "keeper"
	resourceServer     = "server"
	resourceMembership = "membership"
)

// Item is a node changed by a command and the steps the change went through.
type Item struct {
	ID     int32             `json:"id"`
	Report deployment.Report `json:"report"`
}

// MembershipItem is the ensemble membership seen by a keeper.
type MembershipItem struct {
	KeeperID types.KeeperID    `json:"keeper_id"`
	Members  keeper.Membership `json:"members"`
}

// AddKeeper returns a function to add a keeper to the ensemble.
//
// The result of the function executed successfully serializes to follow:
//
//	{
//		"data": {
//			"kind": "keeper",
//			"items": [
//				{"id": 4, "report": {"operation": "add-keeper", "completed": [...]}}
//			]
//		}
//	}
func AddKeeper() chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		kid, report, err := o.AddKeeper(ctx)
		return itemResult(resourceKeeper, int32(kid), report, err)
	}
}

// RemoveKeeper returns a function to remove keeper kid from the ensemble.
func RemoveKeeper(kid types.KeeperID) chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		report, err := o.RemoveKeeper(ctx, kid)
		return itemResult(resourceKeeper, int32(kid), report, err)
	}
}

func AddServer() chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		sid, report, err := o.AddServer(ctx)
		return itemResult(resourceServer, int32(sid), report, err)
	}
}

func RemoveServer(sid types.ServerID) chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		report, err := o.RemoveServer(ctx, sid)
		return itemResult(resourceServer, int32(sid), report, err)
	}
}

// KeeperConfig returns a function to read the ensemble membership from
// keeper kid.
func KeeperConfig(kid types.KeeperID) chwardctl.ExecuteFunc {
	return func(ctx context.Context, o chwardctl.Orchestrator) *result.Result {
		res := result.New(resourceMembership)
		membership, err := o.KeeperMembership(ctx, kid)
		if err != nil {
			res.AddErrors(err)
			return res
		}
		res.AddDataItems(MembershipItem{KeeperID: kid, Members: membership})
		return res
	}
}

func itemResult(kind string, id int32, report deployment.Report, err error) *result.Result {
	res := result.New(kind)
	if err != nil {
		res.AddErrors(err)
		return res
	}
	res.AddDataItems(Item{ID: id, Report: report})
	return res
}
