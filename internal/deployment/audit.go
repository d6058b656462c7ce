package deployment

import (
	"context"
	"net"
	"strings"

	"github.com/kakao/chward/internal/keeper"
	"github.com/kakao/chward/pkg/types"
)

// AddressMismatch is a keeper whose Raft address reported by the ensemble
// differs from where it is placed.
type AddressMismatch struct {
	KeeperID types.KeeperID `json:"keeper_id"`
	Expected string         `json:"expected"`
	Actual   string         `json:"actual"`
}

// AuditReport compares the ensemble membership with the topology record.
type AuditReport struct {
	// KeeperID is the keeper that was asked for the membership.
	KeeperID   types.KeeperID    `json:"keeper_id"`
	Membership keeper.Membership `json:"membership"`
	// OnlyInTopology are live keepers in the record unknown to the ensemble.
	OnlyInTopology []types.KeeperID `json:"only_in_topology"`
	// OnlyInEnsemble are ensemble members absent from the record.
	OnlyInEnsemble    []types.KeeperID  `json:"only_in_ensemble"`
	AddressMismatches []AddressMismatch `json:"address_mismatches"`
}

func (r AuditReport) Consistent() bool {
	return len(r.OnlyInTopology) == 0 && len(r.OnlyInEnsemble) == 0 && len(r.AddressMismatches) == 0
}

// Audit fetches the membership through keeper kid and compares it with the
// topology record. It reports differences and changes nothing.
func (d *Deployment) Audit(ctx context.Context, kid types.KeeperID) (AuditReport, error) {
	topo, err := d.store.Load()
	if err != nil {
		return AuditReport{}, err
	}
	membership, err := d.KeeperMembership(ctx, kid)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{
		KeeperID:          kid,
		Membership:        membership,
		OnlyInTopology:    []types.KeeperID{},
		OnlyInEnsemble:    []types.KeeperID{},
		AddressMismatches: []AddressMismatch{},
	}
	for _, id := range topo.KeeperIDs() {
		actual, ok := membership[id]
		if !ok {
			report.OnlyInTopology = append(report.OnlyInTopology, id)
			continue
		}
		expected, err := d.layout.KeeperRaftAddress(id)
		if err != nil {
			return AuditReport{}, err
		}
		if normalizeAddr(actual) != normalizeAddr(expected) {
			report.AddressMismatches = append(report.AddressMismatches, AddressMismatch{
				KeeperID: id,
				Expected: expected,
				Actual:   actual,
			})
		}
	}
	for _, id := range membership.IDs() {
		if !topo.HasKeeper(id) {
			report.OnlyInEnsemble = append(report.OnlyInEnsemble, id)
		}
	}
	return report, nil
}

// normalizeAddr canonicalizes host:port, accepting IPv6 hosts without
// brackets as keepers report them, for instance, "::1:21001".
func normalizeAddr(addr string) string {
	if host, port, err := net.SplitHostPort(addr); err == nil {
		return net.JoinHostPort(host, port)
	}
	i := strings.LastIndexByte(addr, ':')
	if i < 0 {
		return addr
	}
	return net.JoinHostPort(strings.Trim(addr[:i], "[]"), addr[i+1:])
}
