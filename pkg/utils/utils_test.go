package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 2*time.Hour)
	staffID := uuid.New()

	access, err := m.GenerateAccessToken(staffID, "admin@garage.in", "admin")
	require.NoError(t, err)
	claims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, staffID, claims.StaffID)
	assert.Equal(t, "admin", claims.Role)

	refresh, err := m.GenerateRefreshToken(staffID)
	require.NoError(t, err)
	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, staffID, got)

	// the two token kinds are not interchangeable
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	other := NewJWTManager("other-secret", time.Hour, time.Hour)
	_, err = other.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", "owner")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2026-05-10", "2026-05-10T00:00:00Z", "2026-05-10T00:00:00", " 2026-05-10 00:00:00 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)), in)
	}
	_, err := ParseDate("10/05/2026")
	assert.Error(t, err)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "INV-2026-000042", FormatInvoiceNo("inv", 2026, 42))
	assert.Equal(t, "INV-2026-1234567", FormatInvoiceNo("", 2026, 1234567))
	assert.Equal(t, "+919845012345", NormalizeMobile(" +91 98450-12345 "))
	assert.Equal(t, "KA01AB1234", NormalizeVehicleNo(" ka 01 ab 1234"))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
}
