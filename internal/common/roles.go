// File: internal/common/roles.go
package common

const (
	// RoleCustomer is the default role assigned on first login.
	RoleCustomer = "customer"
	// RoleSeller is granted once and only by the seller registration flow.
	RoleSeller = "seller"
)
