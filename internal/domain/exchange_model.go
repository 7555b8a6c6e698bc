package domain

import (
	"time"

	"gorm.io/gorm"
)

// InternetExchange is the exchange operator record. Every exchange owns
// exactly one IXLan, created alongside it.
type InternetExchange struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID   uint64 `gorm:"not null;default:0;index" json:"org_id"`
	Name    string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Country string `gorm:"size:2;not null;default:''" json:"country"`
	City    string `gorm:"size:192;not null;default:''" json:"city"`
	Media   string `gorm:"size:128;not null;default:'Ethernet'" json:"media"`

	TechEmail   string `gorm:"size:254;not null;default:''" json:"tech_email"`
	TechPhone   string `gorm:"size:192;not null;default:''" json:"tech_phone"`
	PolicyEmail string `gorm:"size:254;not null;default:''" json:"policy_email"`
	PolicyPhone string `gorm:"size:192;not null;default:''" json:"policy_phone"`

	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (InternetExchange) TableName() string {
	return "ix"
}

func (ix *InternetExchange) BeforeSave(_ *gorm.DB) error {
	if ix.Status == "" {
		ix.Status = StatusOK
	}
	return nil
}

// IXLan is the peering LAN of an exchange. It owns all prefix and peering
// records that reference it.
type IXLan struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	IXID uint64 `gorm:"column:ix_id;not null;uniqueIndex" json:"ix_id"`
	Name string `gorm:"size:255;not null;default:''" json:"name"`
	MTU  uint32 `gorm:"column:mtu;not null;default:1500" json:"mtu"`

	IXFMemberListURL string `gorm:"column:ixf_ixp_member_list_url;size:255;not null;default:''" json:"ixf_ixp_member_list_url"`
	IXFImportEnabled bool   `gorm:"column:ixf_ixp_import_enabled;not null" json:"ixf_ixp_import_enabled"`

	Status    Status    `gorm:"size:16;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (IXLan) TableName() string {
	return "ixlan"
}

func (lan *IXLan) BeforeSave(_ *gorm.DB) error {
	if lan.Status == "" {
		lan.Status = StatusOK
	}
	return nil
}
