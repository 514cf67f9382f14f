package config

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/k-sone/critbitgo"
)

// SkipTable is an IP-network membership table backing the skip_table
// lookups spec'd for the authority and additional sections: when a
// responder's address falls inside one of these networks, records from
// that responder in the corresponding section are parsed for their common
// prefix only, never their typed RDATA.
type SkipTable struct {
	tree *critbitgo.Net
}

// NewSkipTable builds a SkipTable from a list of CIDR strings.
func NewSkipTable(cidrs []string) (*SkipTable, error) {
	tree := critbitgo.NewNet()
	for _, c := range cidrs {
		if err := tree.AddCIDR(c, struct{}{}); err != nil {
			return nil, fmt.Errorf("skip table: invalid network %q: %w", c, err)
		}
	}
	return &SkipTable{tree: tree}, nil
}

// Contains reports whether addr falls inside any network in the table. A
// nil or empty table always returns false.
func (t *SkipTable) Contains(addr netip.Addr) bool {
	if t == nil || t.tree == nil {
		return false
	}
	ok, err := t.tree.ContainedIP(net.IP(addr.AsSlice()))
	if err != nil {
		return false
	}
	return ok
}
