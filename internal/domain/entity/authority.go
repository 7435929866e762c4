package entity

// Authority names granted to accounts.
// Stored one row per grant in account_roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// SystemAccount is recorded in audit columns for writes not made by a signed-in user.
const SystemAccount = "system"
