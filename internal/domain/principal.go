package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the acting party of a validation or save call. Callers pass it
// explicitly; nil means an unauthenticated or system context.
type Principal interface {
	IsPrivileged() bool
}

// User is the principal decoded from a bearer token.
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Superuser bool   `json:"superuser"`
}

func (u *User) IsPrivileged() bool {
	if u == nil {
		return false
	}
	return u.Superuser || u.Role == RoleAdmin
}
