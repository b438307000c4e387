package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"churchbook_backend/internals/constants"
)

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// AccessClaims: sub is the token id that keys the stored refresh token.
type AccessClaims struct {
	ChurchID string `json:"churchId"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	RoleName string `json:"roleName"`
	jwt.RegisteredClaims
}

func (c *AccessClaims) TokenID() (uuid.UUID, error)  { return uuid.Parse(c.Subject) }
func (c *AccessClaims) Church() (uuid.UUID, error)   { return uuid.Parse(c.ChurchID) }
func (c *AccessClaims) User() (uuid.UUID, error)     { return uuid.Parse(c.UserID) }
func (c *AccessClaims) Role() (constants.Role, bool) { return constants.RoleByName(c.RoleName) }

type Signer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewSigner(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Signer, error) {
	accessSecret, refreshSecret = strings.TrimSpace(accessSecret), strings.TrimSpace(refreshSecret)
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock returns a copy that reads time from now.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	c := *s
	c.now = now
	return &c
}

func (s *Signer) RefreshTTL() time.Duration { return s.refreshTTL }

type Subject struct {
	TokenID  uuid.UUID
	ChurchID uuid.UUID
	UserID   uuid.UUID
	Name     string
	Role     constants.Role
}

func (s *Signer) IssueAccess(sub Subject) (string, error) {
	now := s.now()
	claims := AccessClaims{
		ChurchID: sub.ChurchID.String(),
		UserID:   sub.UserID.String(),
		Name:     sub.Name,
		RoleName: sub.Role.Key(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.TokenID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

// IssueRefresh returns the token and its expiry.
func (s *Signer) IssueRefresh(tokenID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.refreshTTL)
	claims := jwt.RegisteredClaims{
		Subject:   tokenID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	return raw, exp, err
}

// ParseAccess verifies signature and expiry.
func (s *Signer) ParseAccess(raw string) (*AccessClaims, error) {
	return s.parseAccess(raw, jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})))
}

// ParseAccessIgnoringExpiry verifies the signature only; used by refresh.
func (s *Signer) ParseAccessIgnoringExpiry(raw string) (*AccessClaims, error) {
	return s.parseAccess(raw, jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	))
}

func (s *Signer) parseAccess(raw string, p *jwt.Parser) (*AccessClaims, error) {
	claims := &AccessClaims{}
	tok, err := p.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return s.accessSecret, nil })
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Signer) ParseRefresh(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	p := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := p.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return s.refreshSecret, nil })
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashRefresh: only the HMAC of a refresh token is persisted, never the plaintext
func (s *Signer) HashRefresh(raw string) []byte {
	m := hmac.New(sha256.New, s.refreshSecret)
	_, _ = m.Write([]byte(raw))
	return m.Sum(nil)
}

func (s *Signer) RefreshMatches(raw string, hash []byte) bool {
	return hmac.Equal(s.HashRefresh(raw), hash)
}
