package util

import (
	"lms_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	orgID := uint(42)
	user := &model.User{
		OrganizationID: &orgID,
		Email:          "member@example.com",
		Role:           model.Member,
	}
	user.ID = 7

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	require.NotNil(t, claims.OrganizationID)
	assert.Equal(t, uint(42), *claims.OrganizationID)
	assert.Equal(t, model.Member, claims.Role)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestClaimsAuthorization(t *testing.T) {
	orgID := uint(5)
	otherOrg := uint(6)

	tests := []struct {
		name   string
		claims Claims
		org    uint
		want   bool
	}{
		{name: "super admin any org", claims: Claims{Role: model.SuperAdmin}, org: orgID, want: true},
		{name: "system admin any org", claims: Claims{Role: model.SystemAdmin}, org: otherOrg, want: true},
		{name: "org admin own org", claims: Claims{Role: model.OrganizationAdmin, OrganizationID: &orgID}, org: orgID, want: true},
		{name: "org admin other org", claims: Claims{Role: model.OrganizationAdmin, OrganizationID: &orgID}, org: otherOrg, want: false},
		{name: "org admin without org", claims: Claims{Role: model.OrganizationAdmin}, org: orgID, want: false},
		{name: "member own org", claims: Claims{Role: model.Member, OrganizationID: &orgID}, org: orgID, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.CanAdministerOrg(tt.org))
		})
	}
}

func TestIsPlatformAdmin(t *testing.T) {
	assert.True(t, (&Claims{Role: model.SuperAdmin}).IsPlatformAdmin())
	assert.True(t, (&Claims{Role: model.SystemAdmin}).IsPlatformAdmin())
	assert.False(t, (&Claims{Role: model.OrganizationAdmin}).IsPlatformAdmin())
	assert.False(t, (&Claims{Role: model.Member}).IsPlatformAdmin())
}
