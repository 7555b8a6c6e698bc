package domain

import (
	"net/netip"
	"strings"
	"time"

	"gorm.io/gorm"
)

// NetworkIXLan is a peering record: a network present on an exchange LAN at
// up to one IPv4 and one IPv6 address.
type NetworkIXLan struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	NetworkID uint64 `gorm:"column:net_id;not null;index" json:"net_id"`
	IXLanID   uint64 `gorm:"column:ixlan_id;not null;index:idx_netixlan_ip4,priority:1;index:idx_netixlan_ip6,priority:1" json:"ixlan_id"`
	ASN       uint32 `gorm:"column:asn;not null" json:"asn"`

	IPAddr4 *string `gorm:"column:ipaddr4;size:45;index:idx_netixlan_ip4,priority:2" json:"ipaddr4"`
	IPAddr6 *string `gorm:"column:ipaddr6;size:45;index:idx_netixlan_ip6,priority:2" json:"ipaddr6"`

	Speed       uint32 `gorm:"not null" json:"speed"`
	IsRSPeer    bool   `gorm:"column:is_rs_peer;not null" json:"is_rs_peer"`
	Operational bool   `gorm:"not null" json:"operational"`

	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (NetworkIXLan) TableName() string {
	return "netixlan"
}

// BeforeSave normalises both addresses so equality in SQL matches netip equality.
func (n *NetworkIXLan) BeforeSave(_ *gorm.DB) error {
	n.IPAddr4 = normalizeAddr(n.IPAddr4)
	n.IPAddr6 = normalizeAddr(n.IPAddr6)
	if n.Status == "" {
		n.Status = StatusOK
	}
	return nil
}

func normalizeAddr(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	if addr, err := netip.ParseAddr(trimmed); err == nil {
		trimmed = addr.Unmap().String()
	}
	return &trimmed
}

// Addr returns the address held for the given family.
func (n NetworkIXLan) Addr(family Protocol) (netip.Addr, bool) {
	raw := n.IPAddr4
	if family == ProtocolIPv6 {
		raw = n.IPAddr6
	}
	if raw == nil {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(*raw))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// Addr4 is Addr(ProtocolIPv4) with the zero Addr standing in for "none".
func (n NetworkIXLan) Addr4() netip.Addr {
	addr, _ := n.Addr(ProtocolIPv4)
	return addr
}

func (n NetworkIXLan) Addr6() netip.Addr {
	addr, _ := n.Addr(ProtocolIPv6)
	return addr
}

func (n NetworkIXLan) HasAddress() bool {
	return n.IPAddr4 != nil || n.IPAddr6 != nil
}

// AddrString is a convenience for building the optional address fields.
func AddrString(addr string) *string {
	if strings.TrimSpace(addr) == "" {
		return nil
	}
	return &addr
}
