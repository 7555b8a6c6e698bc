package ixf

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
)

const (
	testIP4 = "195.69.147.250"
	testIP6 = "2001:7f8:1::a500:2906:1"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name+".json"))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

func TestDecodeMemberList(t *testing.T) {
	snap, err := Decode(loadFixture(t, "ixf.member.1"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snap.Len() != 2 {
		t.Fatalf("expected 2 tuples, got %d: %+v", snap.Len(), snap.Members())
	}

	first := snap.Members()[0]
	if first.ASN != 1001 || first.IPv4 != netip.MustParseAddr(testIP4) || first.IPv6 != netip.MustParseAddr(testIP6) {
		t.Fatalf("unexpected first member %+v", first)
	}
	second := snap.Members()[1]
	if second.ASN != 1002 || second.IPv6.IsValid() {
		t.Fatalf("unexpected second member %+v", second)
	}
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	for _, raw := range []string{
		`{"invalid": "data"}`,
		`{"member_list": null}`,
		`{"member_list": {"asnum": 1}}`,
		`not json`,
		``,
	} {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrMalformedSnapshot) {
			t.Fatalf("Decode(%q) error = %v, want ErrMalformedSnapshot", raw, err)
		}
	}

	snap, err := Decode([]byte(`{"member_list": []}`))
	if err != nil {
		t.Fatalf("empty member list rejected: %v", err)
	}
	if snap.Len() != 0 {
		t.Fatalf("expected empty snapshot, got %d tuples", snap.Len())
	}
}

func TestSnapshotPeerExists(t *testing.T) {
	snap, err := Decode(loadFixture(t, "ixf.member.1"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ip4 := netip.MustParseAddr(testIP4)
	ip6 := netip.MustParseAddr(testIP6)

	cases := []struct {
		name         string
		asn          uint32
		ip4, ip6     netip.Addr
		want4, want6 bool
	}{
		{"real peer", 1001, ip4, ip6, true, true},
		{"ghost peer", 1010, ip4, ip6, false, false},
		{"real peer v4 only", 1001, ip4, netip.Addr{}, true, false},
		{"wrong address", 1001, netip.MustParseAddr("195.69.147.251"), ip6, false, true},
		{"other member", 1002, netip.MustParseAddr("195.69.147.200"), ip6, true, false},
		{"mapped v4", 1001, netip.MustParseAddr("::ffff:" + testIP4), netip.Addr{}, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got4, got6 := snap.PeerExists(tc.asn, tc.ip4, tc.ip6)
			if got4 != tc.want4 || got6 != tc.want6 {
				t.Fatalf("PeerExists(%d) = (%v, %v), want (%v, %v)", tc.asn, got4, got6, tc.want4, tc.want6)
			}
		})
	}
}
