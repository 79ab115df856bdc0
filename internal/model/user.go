package model

import "time"

// Application roles.  The permission table is fixed: routes declare which of
// these roles may reach them (e.g. only admin and manager may delete a boat).
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// StaffRoles lists the roles allowed on administration endpoints.
var StaffRoles = []string{RoleAdmin, RoleManager, RoleStaff}

// ValidRole reports whether r is a known role name.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table.  Users belong to exactly one company and carry a role string used
// for permission checks.  Handlers define separate response types with JSON
// tags; this struct is used by the repository layer.
//
// Fields:
//  ID           – primary key identifier of the user.
//  CompanyID    – tenant the user belongs to.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of admin, manager, staff, customer.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	CompanyID    uint64    // users.company_id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
