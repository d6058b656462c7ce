package keeper

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/kakao/chward/pkg/types"
)

// ErrUnexpectedResponse is returned when the configuration reported by a
// keeper cannot be parsed.
var ErrUnexpectedResponse = errors.New("unexpected response")

// Membership maps keeper IDs to their Raft addresses as reported by the
// ensemble.
type Membership map[types.KeeperID]string

// IDs returns the keeper IDs in ascending order.
func (m Membership) IDs() []types.KeeperID {
	ids := maps.Keys(m)
	slices.Sort(ids)
	return ids
}

// ParseMembership parses the value of the /keeper/config node. Each
// non-empty line looks like "server.<id>=<host>:<port>;<role>;<priority>".
// A single malformed line fails the whole response.
func ParseMembership(text string) (Membership, error) {
	m := make(Membership)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		kid, addr, err := parseMembershipLine(line)
		if err != nil {
			return nil, err
		}
		m[kid] = addr
	}
	return m, nil
}

func parseMembershipLine(line string) (types.KeeperID, string, error) {
	rest, ok := strings.CutPrefix(line, "server.")
	if !ok {
		return 0, "", errors.Wrapf(ErrUnexpectedResponse, "no server prefix: %q", line)
	}
	id, value, ok := strings.Cut(rest, "=")
	if !ok {
		return 0, "", errors.Wrapf(ErrUnexpectedResponse, "no separator: %q", line)
	}
	if !isDigits(id) {
		return 0, "", errors.Wrapf(ErrUnexpectedResponse, "bad keeper id: %q", line)
	}
	kid, err := types.ParseKeeperID(id)
	if err != nil || kid.Invalid() {
		return 0, "", errors.Wrapf(ErrUnexpectedResponse, "bad keeper id: %q", line)
	}
	addr, _, _ := strings.Cut(value, ";")
	// IPv6 hosts are reported without brackets, so the port follows the
	// last colon.
	i := strings.LastIndexByte(addr, ':')
	if i <= 0 || !isDigits(addr[i+1:]) {
		return 0, "", errors.Wrapf(ErrUnexpectedResponse, "bad address: %q", line)
	}
	if _, err := strconv.ParseUint(addr[i+1:], 10, 16); err != nil {
		return 0, "", errors.Wrapf(ErrUnexpectedResponse, "bad port: %q", line)
	}
	return kid, addr, nil
}

func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
