// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a user holds in the marketplace.
type Role string

const (
	// RoleFarmer indicates a seller account that owns products.
	RoleFarmer Role = "FARMER"
	// RoleBuyer indicates a purchasing account that owns a cart and orders.
	RoleBuyer Role = "BUYER"
	// RoleAdmin indicates an administrative account.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return true
	default:
		return false
	}
}
