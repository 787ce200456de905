package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestimo/rentd/internal/model"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestParseValidToken(t *testing.T) {
	userID, orgID := uuid.New(), uuid.New()
	raw := signToken(t, "secret", jwt.MapClaims{
		"sub":    userID.String(),
		"org_id": orgID.String(),
		"role":   model.RoleManager,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	principal, err := NewParser("secret").Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, orgID, principal.OrgID)
	assert.Equal(t, model.RoleManager, principal.Role)
	assert.True(t, principal.CanWrite())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw := signToken(t, "other", jwt.MapClaims{
		"sub":    uuid.New().String(),
		"org_id": uuid.New().String(),
		"role":   model.RoleViewer,
	})
	_, err := NewParser("secret").Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	raw := signToken(t, "secret", jwt.MapClaims{
		"sub":    uuid.New().String(),
		"org_id": uuid.New().String(),
		"role":   model.RoleViewer,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	_, err := NewParser("secret").Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingClaims(t *testing.T) {
	cases := map[string]jwt.MapClaims{
		"no sub":   {"org_id": uuid.New().String(), "role": model.RoleViewer},
		"no org":   {"sub": uuid.New().String(), "role": model.RoleViewer},
		"no role":  {"sub": uuid.New().String(), "org_id": uuid.New().String()},
		"bad uuid": {"sub": "not-a-uuid", "org_id": uuid.New().String(), "role": model.RoleViewer},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser("secret").Parse(signToken(t, "secret", claims))
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
