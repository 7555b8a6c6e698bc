package validation

import (
	"ixfguard/internal/config"
	"ixfguard/internal/domain"
)

// Context is threaded through every validator call: who is acting and which
// data-quality rules apply. There is no ambient principal.
type Context struct {
	Principal domain.Principal
	Rules     config.DataQuality
}

// NewContext binds a principal to the currently loaded rules.
func NewContext(principal domain.Principal) Context {
	return Context{
		Principal: principal,
		Rules:     config.GetConfig().DataQuality,
	}
}

// Bypass reports whether data-quality validation is skipped for this call.
func (c Context) Bypass() bool {
	return BypassValidation(c.Principal)
}

// BypassValidation is true iff the principal is a superuser or administrator.
func BypassValidation(principal domain.Principal) bool {
	if principal == nil {
		return false
	}
	return principal.IsPrivileged()
}
