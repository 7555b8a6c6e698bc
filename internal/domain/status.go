package domain

import "fmt"

// Status is the soft-delete lifecycle shared by every record kind.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPending Status = "pending"
	StatusDeleted Status = "deleted"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusOK, StatusPending, StatusDeleted:
		return s, nil
	case "":
		return StatusOK, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// IsActive reports whether a record with this status still holds its resources.
func (s Status) IsActive() bool {
	return s == StatusOK || s == StatusPending
}

// Protocol names the address family of a prefix or peering address.
type Protocol string

const (
	ProtocolIPv4 Protocol = "IPv4"
	ProtocolIPv6 Protocol = "IPv6"
)

func (p Protocol) Valid() bool {
	return p == ProtocolIPv4 || p == ProtocolIPv6
}
