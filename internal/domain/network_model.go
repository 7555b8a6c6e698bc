package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Network is an autonomous system operator.
type Network struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID uint64 `gorm:"not null;default:0;index" json:"org_id"`
	ASN   uint32 `gorm:"column:asn;uniqueIndex;not null" json:"asn"`
	Name  string `gorm:"size:255;uniqueIndex;not null" json:"name"`

	IRRAsSet      string `gorm:"column:irr_as_set;size:255;not null;default:''" json:"irr_as_set"`
	InfoPrefixes4 *int   `gorm:"column:info_prefixes4" json:"info_prefixes4"`
	InfoPrefixes6 *int   `gorm:"column:info_prefixes6" json:"info_prefixes6"`

	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (Network) TableName() string {
	return "network"
}

func (n *Network) BeforeSave(_ *gorm.DB) error {
	n.IRRAsSet = strings.TrimSpace(n.IRRAsSet)
	if n.Status == "" {
		n.Status = StatusOK
	}
	return nil
}

// NetworkContact is a point of contact published by a network.
type NetworkContact struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	NetworkID uint64 `gorm:"column:net_id;not null;index" json:"net_id"`
	Role      string `gorm:"size:27;not null" json:"role"`
	Visible   string `gorm:"size:64;not null;default:'Public'" json:"visible"`
	Name      string `gorm:"size:254;not null;default:''" json:"name"`
	Phone     string `gorm:"size:100;not null;default:''" json:"phone"`
	Email     string `gorm:"size:254;not null;default:''" json:"email"`
	URL       string `gorm:"column:url;size:255;not null;default:''" json:"url"`

	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (NetworkContact) TableName() string {
	return "poc"
}

func (c *NetworkContact) BeforeSave(_ *gorm.DB) error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Status == "" {
		c.Status = StatusOK
	}
	return nil
}
