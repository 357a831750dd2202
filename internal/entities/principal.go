package entities

import "fmt"

// Principal represents an authenticated platform user as seen by the
// authorization engine: an identity plus the single role it holds.
type Principal struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Active bool   `json:"active"`
}

// IsAdministrator reports whether the principal holds the administrator role.
func (p *Principal) IsAdministrator() bool {
	return p.Role == RoleAdministrator
}

// Validate checks if the principal is valid
func (p *Principal) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("principal ID is required")
	}
	if !ValidRole(p.Role) {
		return fmt.Errorf("unknown role: %s", p.Role)
	}
	return nil
}
