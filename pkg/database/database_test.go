package database

import (
	"lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBootstrapAdminUser(t *testing.T) {
	admin, err := bootstrapAdminUser()
	require.NoError(t, err)

	assert.Equal(t, "admin@localhost", admin.Email)
	assert.Equal(t, model.SuperAdmin, admin.Role)

	// The seeded hash must verify against the documented initial password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(bootstrapAdminPassword)))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("wrong-password")))
}
