package auth

import "context"

// UserStorage persists user records keyed by email.
type UserStorage interface {
	// UpsertUser creates or refreshes the record for identity. When role is
	// RoleAdmin the stored role is raised to admin; otherwise an existing
	// role is kept and new records start as RoleUser.
	//
	// The stored role is never lowered: removing an identity from the allow
	// list does not demote it. Only SetRole can change an admin back to a
	// user.
	UpsertUser(ctx context.Context, identity Identity, role Role) (*User, error)

	// SetRole updates the role of the user with the given email. Returns
	// ErrUserNotFound when no record matches.
	SetRole(ctx context.Context, email string, role Role) error
}
