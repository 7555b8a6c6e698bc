package ixf

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
)

var ErrMalformedSnapshot = errors.New("malformed ix-f member list")

// Member is one (asn, ipv4, ipv6) tuple reported by an exchange. Either
// address may be the zero Addr when the VLAN entry only carries one family.
type Member struct {
	ASN  uint32
	IPv4 netip.Addr
	IPv6 netip.Addr
}

// Snapshot is a decoded IX-F member list. It is immutable once built and may
// be shared between goroutines.
type Snapshot struct {
	members []Member
	byASN   map[uint32][]int
}

type memberListDocument struct {
	MemberList *[]memberEntry `json:"member_list"`
}

type memberEntry struct {
	ASNum          uint32            `json:"asnum"`
	ConnectionList []connectionEntry `json:"connection_list"`
}

type connectionEntry struct {
	VLANList []vlanEntry `json:"vlan_list"`
}

type vlanEntry struct {
	IPv4 *vlanAddress `json:"ipv4"`
	IPv6 *vlanAddress `json:"ipv6"`
}

type vlanAddress struct {
	Address string `json:"address"`
}

// Decode parses an IX-F member export. A document without a member_list is
// rejected; unparseable addresses inside an otherwise valid list are dropped.
func Decode(raw []byte) (*Snapshot, error) {
	var doc memberListDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	if doc.MemberList == nil {
		return nil, fmt.Errorf("%w: member_list missing", ErrMalformedSnapshot)
	}

	snap := &Snapshot{byASN: make(map[uint32][]int)}
	for _, entry := range *doc.MemberList {
		if entry.ASNum == 0 {
			continue
		}
		for _, conn := range entry.ConnectionList {
			for _, vlan := range conn.VLANList {
				m := Member{
					ASN:  entry.ASNum,
					IPv4: vlan.IPv4.addr(true),
					IPv6: vlan.IPv6.addr(false),
				}
				if !m.IPv4.IsValid() && !m.IPv6.IsValid() {
					continue
				}
				snap.byASN[m.ASN] = append(snap.byASN[m.ASN], len(snap.members))
				snap.members = append(snap.members, m)
			}
		}
	}
	return snap, nil
}

func (a *vlanAddress) addr(v4 bool) netip.Addr {
	if a == nil || a.Address == "" {
		return netip.Addr{}
	}
	addr, err := netip.ParseAddr(a.Address)
	if err != nil {
		return netip.Addr{}
	}
	addr = addr.Unmap()
	if addr.Is4() != v4 {
		return netip.Addr{}
	}
	return addr
}

// Members returns a copy of every reported tuple in document order.
func (s *Snapshot) Members() []Member {
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s *Snapshot) Len() int {
	return len(s.members)
}

// PeerExists reports, per family, whether the exchange lists asn at the given
// address. An invalid (zero) address is never found.
func (s *Snapshot) PeerExists(asn uint32, ip4, ip6 netip.Addr) (bool, bool) {
	var found4, found6 bool
	for _, idx := range s.byASN[asn] {
		m := s.members[idx]
		if ip4.IsValid() && m.IPv4 == ip4.Unmap() {
			found4 = true
		}
		if ip6.IsValid() && m.IPv6 == ip6 {
			found6 = true
		}
	}
	return found4, found6
}
