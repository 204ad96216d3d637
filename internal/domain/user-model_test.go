package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate(t *testing.T) {
	u := &User{Email: "bob@x.com", EmailOTP: "123456"}

	err := u.Activate()
	require.NoError(t, err)
	assert.True(t, u.IsEmailVerified)
	assert.True(t, u.IsActive)
	assert.Empty(t, u.EmailOTP)
	assert.Nil(t, u.EmailOTPExpires)

	err = u.Activate()
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestAssignPartner(t *testing.T) {
	u := &User{Email: "alice@x.com", IsRestrictionEnabled: false}

	err := u.AssignPartner("alice@x.com")
	assert.ErrorIs(t, err, ErrSelfAssignment)

	// case-insensitive self check
	err = u.AssignPartner("  ALICE@X.COM ")
	assert.ErrorIs(t, err, ErrSelfAssignment)

	err = u.AssignPartner("Friend@Y.com")
	require.NoError(t, err)
	assert.Equal(t, "friend@y.com", u.PartnerEmail)
	assert.True(t, u.IsRestrictionEnabled)
}

func TestLiftRestriction(t *testing.T) {
	u := &User{Email: "alice@x.com", IsRestrictionEnabled: true}

	err := u.LiftRestriction()
	assert.ErrorIs(t, err, ErrNoActiveChallenge)

	u.PartnerEmail = "friend@y.com"
	u.PartnerVerificationCode = "654321"
	require.True(t, u.HasPartnerChallenge())

	err = u.LiftRestriction()
	require.NoError(t, err)
	assert.Empty(t, u.PartnerEmail)
	assert.Empty(t, u.PartnerVerificationCode)
	assert.False(t, u.IsRestrictionEnabled)
	assert.False(t, u.HasPartnerChallenge())

	// lifted restriction leaves no challenge to verify again
	err = u.LiftRestriction()
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}
