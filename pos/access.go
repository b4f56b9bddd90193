/*
access.go - Password verification and the password-change protocol

Passwords are stored and compared as plain strings: that is the behavioral
contract inherited from the system this replaces (exact-match verification).
The comparison lives entirely behind Credentials so a hashed scheme only has
to touch this file. Do not deploy this as-is anywhere that matters.
*/
package pos

// minPasswordLength is the floor enforced on password changes.
const minPasswordLength = 6

// Credentials holds the role-scoped passwords. The json tags match the
// persisted settings snapshot.
type Credentials struct {
	Staff string `json:"staffPassword"`
	Admin string `json:"adminPassword"`
}

// DefaultCredentials returns the built-in passwords seeded when no persisted
// settings exist.
func DefaultCredentials() Credentials {
	return Credentials{Staff: "staff123", Admin: "admin123"}
}

// Verify reports whether candidate matches the stored password for role.
// An unknown role never verifies.
func (c Credentials) Verify(candidate string, role Role) bool {
	switch role {
	case RoleStaff:
		return candidate == c.Staff
	case RoleAdmin:
		return candidate == c.Admin
	default:
		return false
	}
}

// Change replaces the password for exactly one role after re-verifying the
// current one. Outcomes, in checking order:
//   - ErrUnknownRole       role is not staff/admin
//   - ErrPasswordMismatch  newPassword != confirm
//   - ErrPasswordTooShort  newPassword shorter than 6 characters
//   - ErrWrongPassword     current fails Verify
//
// On any failure nothing changes; the untargeted role is never touched.
func (c *Credentials) Change(role Role, current, newPassword, confirm string) error {
	if !role.Valid() {
		return ErrUnknownRole
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !c.Verify(current, role) {
		return ErrWrongPassword
	}
	switch role {
	case RoleStaff:
		c.Staff = newPassword
	case RoleAdmin:
		c.Admin = newPassword
	}
	return nil
}
