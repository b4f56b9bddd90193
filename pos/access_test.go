package pos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusioneats/pos-engine/pos"
)

func TestCredentials_Verify_ExactMatchPerRole(t *testing.T) {
	creds := pos.DefaultCredentials()

	assert.True(t, creds.Verify("staff123", pos.RoleStaff))
	assert.True(t, creds.Verify("admin123", pos.RoleAdmin))
	assert.False(t, creds.Verify("admin123", pos.RoleStaff))
	assert.False(t, creds.Verify("staff123", pos.RoleAdmin))
	assert.False(t, creds.Verify("staff123", pos.RoleNone))
	assert.False(t, creds.Verify("", pos.RoleStaff))
}

func TestCredentials_Change_WrongCurrentPassword(t *testing.T) {
	// GIVEN: default credentials
	// WHEN: a change is attempted with the wrong current password
	// THEN: it fails with ErrWrongPassword and the old password still verifies

	creds := pos.DefaultCredentials()

	err := creds.Change(pos.RoleStaff, "wrong", "newpass1", "newpass1")

	assert.ErrorIs(t, err, pos.ErrWrongPassword)
	assert.True(t, creds.Verify("staff123", pos.RoleStaff), "stored password must be unchanged")
	assert.False(t, creds.Verify("newpass1", pos.RoleStaff))
}

func TestCredentials_Change_ConfirmationMismatch(t *testing.T) {
	creds := pos.DefaultCredentials()

	err := creds.Change(pos.RoleStaff, "staff123", "newpass1", "newpass2")

	assert.ErrorIs(t, err, pos.ErrPasswordMismatch)
	assert.True(t, creds.Verify("staff123", pos.RoleStaff))
}

func TestCredentials_Change_TooShort(t *testing.T) {
	creds := pos.DefaultCredentials()

	err := creds.Change(pos.RoleStaff, "staff123", "five5", "five5")

	assert.ErrorIs(t, err, pos.ErrPasswordTooShort)
	assert.True(t, creds.Verify("staff123", pos.RoleStaff))
}

func TestCredentials_Change_UnknownRole(t *testing.T) {
	creds := pos.DefaultCredentials()
	err := creds.Change("manager", "staff123", "newpass1", "newpass1")
	assert.ErrorIs(t, err, pos.ErrUnknownRole)
}

func TestCredentials_Change_OnlyTargetedRoleChanges(t *testing.T) {
	// Changing the staff password must leave the admin password alone.

	creds := pos.DefaultCredentials()

	require.NoError(t, creds.Change(pos.RoleStaff, "staff123", "newpass1", "newpass1"))

	assert.True(t, creds.Verify("newpass1", pos.RoleStaff))
	assert.False(t, creds.Verify("staff123", pos.RoleStaff))
	assert.True(t, creds.Verify("admin123", pos.RoleAdmin))
}
