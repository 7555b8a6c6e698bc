package validation

import (
	"net/netip"
	"strings"

	"ixfguard/internal/domain"
)

type reservedRange struct {
	prefix netip.Prefix
	name   string
}

// IANA IPv4 special-purpose registry entries that are not globally reachable,
// plus multicast and the former class E space.
var reservedV4 = mustReserved([][2]string{
	{"0.0.0.0/8", "this network"},
	{"10.0.0.0/8", "private-use"},
	{"100.64.0.0/10", "shared address space"},
	{"127.0.0.0/8", "loopback"},
	{"169.254.0.0/16", "link local"},
	{"172.16.0.0/12", "private-use"},
	{"192.0.0.0/24", "IETF protocol assignments"},
	{"192.0.2.0/24", "documentation (TEST-NET-1)"},
	{"192.88.99.0/24", "deprecated 6to4 relay anycast"},
	{"192.168.0.0/16", "private-use"},
	{"198.18.0.0/15", "benchmarking"},
	{"198.51.100.0/24", "documentation (TEST-NET-2)"},
	{"203.0.113.0/24", "documentation (TEST-NET-3)"},
	{"224.0.0.0/4", "multicast"},
	{"240.0.0.0/4", "reserved"},
})

// IANA IPv6 special-purpose registry entries, followed by every block of the
// IPv6 address space registry outside 2000::/3 global unicast. Narrow entries
// come first so the reported name is the most specific one.
var reservedV6 = mustReserved([][2]string{
	{"::/128", "unspecified address"},
	{"::1/128", "loopback"},
	{"::ffff:0:0/96", "IPv4-mapped"},
	{"64:ff9b::/96", "IPv4-IPv6 translation (NAT64)"},
	{"64:ff9b:1::/48", "local-use IPv4-IPv6 translation"},
	{"100::/64", "discard-only"},
	{"2001::/32", "TEREDO"},
	{"2001:2::/48", "benchmarking"},
	{"2001:3::/32", "AMT"},
	{"2001:10::/28", "deprecated ORCHID"},
	{"2001:20::/28", "ORCHIDv2"},
	{"2001:30::/28", "drone remote ID"},
	{"2001::/23", "IETF protocol assignments"},
	{"2001:db8::/32", "documentation"},
	{"2002::/16", "6to4"},
	{"3ffe::/16", "6bone"},
	{"3fff::/20", "documentation"},
	{"5f00::/16", "segment routing SIDs"},
	{"::/8", "reserved by IETF"},
	{"100::/8", "reserved by IETF"},
	{"200::/7", "reserved by IETF"},
	{"400::/6", "reserved by IETF"},
	{"800::/5", "reserved by IETF"},
	{"1000::/4", "reserved by IETF"},
	{"4000::/3", "reserved by IETF"},
	{"6000::/3", "reserved by IETF"},
	{"8000::/3", "reserved by IETF"},
	{"a000::/3", "reserved by IETF"},
	{"c000::/3", "reserved by IETF"},
	{"e000::/4", "reserved by IETF"},
	{"f000::/5", "reserved by IETF"},
	{"f800::/6", "reserved by IETF"},
	{"fc00::/7", "unique-local"},
	{"fe00::/9", "reserved by IETF"},
	{"fe80::/10", "link-local unicast"},
	{"fec0::/10", "deprecated site-local"},
	{"ff00::/8", "multicast"},
})

func mustReserved(entries [][2]string) []reservedRange {
	out := make([]reservedRange, 0, len(entries))
	for _, e := range entries {
		out = append(out, reservedRange{prefix: netip.MustParsePrefix(e[0]), name: e[1]})
	}
	return out
}

// ParsePrefix parses CIDR notation. Host bits must be zero.
func ParsePrefix(raw string) (netip.Prefix, error) {
	trimmed := strings.TrimSpace(raw)
	prefix, err := netip.ParsePrefix(trimmed)
	if err != nil {
		return netip.Prefix{}, newFieldError("prefix", raw, ErrInvalidAddressSpace, "Invalid prefix: %s", trimmed)
	}
	if addr := prefix.Addr(); addr.Is4In6() && prefix.Bits() >= 96 {
		prefix = netip.PrefixFrom(addr.Unmap(), prefix.Bits()-96)
	}
	if prefix.Masked() != prefix {
		return netip.Prefix{}, newFieldError("prefix", raw, ErrInvalidAddressSpace, "%s has host bits set", trimmed)
	}
	return prefix, nil
}

// ReservedRangeFor returns the first reserved range the prefix intersects.
func ReservedRangeFor(prefix netip.Prefix) (netip.Prefix, string, bool) {
	table := reservedV6
	if prefix.Addr().Is4() {
		table = reservedV4
	}
	for _, r := range table {
		if r.prefix.Overlaps(prefix) {
			return r.prefix, r.name, true
		}
	}
	return netip.Prefix{}, "", false
}

// ValidateAddressSpace rejects prefixes that touch bogon or reserved space and
// prefixes whose length falls outside the configured bounds for their family.
func ValidateAddressSpace(vc Context, prefix netip.Prefix) (netip.Prefix, error) {
	if vc.Bypass() {
		return prefix, nil
	}
	if !prefix.IsValid() {
		return prefix, newFieldError("prefix", prefix.String(), ErrInvalidAddressSpace, "Invalid prefix")
	}

	if reserved, name, found := ReservedRangeFor(prefix); found {
		return prefix, newFieldError("prefix", prefix.String(), ErrInvalidAddressSpace,
			"Address space invalid: %s (overlaps %s, %s)", prefix, reserved, name)
	}

	minLen, maxLen := vc.Rules.MinPrefixLenV6, vc.Rules.MaxPrefixLenV6
	if prefix.Addr().Is4() {
		minLen, maxLen = vc.Rules.MinPrefixLenV4, vc.Rules.MaxPrefixLenV4
	}
	if prefix.Bits() < minLen {
		return prefix, newFieldError("prefix", prefix.String(), ErrPrefixLengthOutOfBounds,
			"Prefix length /%d is shorter than the allowed minimum of /%d", prefix.Bits(), minLen)
	}
	if prefix.Bits() > maxLen {
		return prefix, newFieldError("prefix", prefix.String(), ErrPrefixLengthOutOfBounds,
			"Prefix length /%d is longer than the allowed maximum of /%d", prefix.Bits(), maxLen)
	}

	return prefix, nil
}

// ValidatePrefixProtocol checks that the declared protocol matches the prefix family.
func ValidatePrefixProtocol(protocol domain.Protocol, prefix netip.Prefix) error {
	want := domain.ProtocolIPv6
	if prefix.Addr().Is4() {
		want = domain.ProtocolIPv4
	}
	if protocol != want {
		return newFieldError("protocol", string(protocol), ErrProtocolMismatch,
			"Prefix %s is %s, not %s", prefix, want, protocol)
	}
	return nil
}
