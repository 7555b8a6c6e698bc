package domain

import (
	"net/netip"
	"strings"
	"time"

	"gorm.io/gorm"
)

// IXLanPrefix is an address block assigned to a peering LAN.
type IXLanPrefix struct {
	ID       uint64   `gorm:"primaryKey;autoIncrement" json:"id"`
	IXLanID  uint64   `gorm:"column:ixlan_id;not null;index" json:"ixlan_id"`
	Protocol Protocol `gorm:"size:4;not null" json:"protocol"`
	Prefix   string   `gorm:"size:64;not null;index" json:"prefix"`
	InDFZ    bool     `gorm:"column:in_dfz;not null" json:"in_dfz"`

	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (IXLanPrefix) TableName() string {
	return "ixpfx"
}

// BeforeSave stores the prefix in its canonical text form.
func (p *IXLanPrefix) BeforeSave(_ *gorm.DB) error {
	if parsed, err := netip.ParsePrefix(strings.TrimSpace(p.Prefix)); err == nil {
		p.Prefix = parsed.Masked().String()
	}
	if p.Status == "" {
		p.Status = StatusOK
	}
	return nil
}

// Network returns the parsed prefix; ok is false for unparseable rows.
func (p IXLanPrefix) Network() (netip.Prefix, bool) {
	parsed, err := netip.ParsePrefix(p.Prefix)
	if err != nil {
		return netip.Prefix{}, false
	}
	return parsed, true
}
