package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchbook_backend/internals/constants"
)

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return s
}

func TestNewSigner_RequiresSecrets(t *testing.T) {
	_, err := NewSigner("", "x", time.Hour, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = NewSigner("x", "  ", time.Hour, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newTestSigner(t)
	sub := Subject{TokenID: uuid.New(), ChurchID: uuid.New(), UserID: uuid.New(), Name: "홍길동", Role: constants.RoleLeader}

	raw, err := s.IssueAccess(sub)
	require.NoError(t, err)

	claims, err := s.ParseAccess(raw)
	require.NoError(t, err)
	tokenID, err := claims.TokenID()
	require.NoError(t, err)
	assert.Equal(t, sub.TokenID, tokenID)
	userID, _ := claims.User()
	assert.Equal(t, sub.UserID, userID)
	churchID, _ := claims.Church()
	assert.Equal(t, sub.ChurchID, churchID)
	role, ok := claims.Role()
	require.True(t, ok)
	assert.Equal(t, constants.RoleLeader, role)
	assert.Equal(t, "홍길동", claims.Name)
}

func TestAccessToken_ExpiredOnlyParsesIgnoringExpiry(t *testing.T) {
	s := newTestSigner(t).WithClock(func() time.Time { return time.Now().Add(-3 * time.Hour) })
	raw, err := s.IssueAccess(Subject{TokenID: uuid.New(), Role: constants.RoleMember})
	require.NoError(t, err)

	_, err = s.ParseAccess(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := s.ParseAccessIgnoringExpiry(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Subject)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	raw, err := newTestSigner(t).IssueAccess(Subject{TokenID: uuid.New(), Role: constants.RoleMember})
	require.NoError(t, err)

	other, err := NewSigner("other", "refresh-secret", time.Hour, time.Hour)
	require.NoError(t, err)
	_, err = other.ParseAccessIgnoringExpiry(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_HashAndParse(t *testing.T) {
	s := newTestSigner(t)
	tokenID := uuid.New()
	raw, exp, err := s.IssueRefresh(tokenID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	claims, err := s.ParseRefresh(raw)
	require.NoError(t, err)
	assert.Equal(t, tokenID.String(), claims.Subject)

	hash := s.HashRefresh(raw)
	assert.True(t, s.RefreshMatches(raw, hash))
	assert.False(t, s.RefreshMatches(raw+"x", hash))

	// an access token is not a refresh token
	access, err := s.IssueAccess(Subject{TokenID: tokenID, Role: constants.RoleMember})
	require.NoError(t, err)
	_, err = s.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
