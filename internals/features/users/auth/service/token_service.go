package service

import (
	"context"
	"strings"

	"churchbook_backend/internals/features/users/auth/dto"
	"churchbook_backend/internals/repository"
)

/* ==========================
   Refresh
========================== */

// Refresh mints a new access token for the same token id. The refresh token is not
// rotated.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenPair, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	access, refresh := strings.TrimSpace(req.AccessToken), strings.TrimSpace(req.RefreshToken)

	claims, err := s.signer.ParseAccessIgnoringExpiry(access)
	if err != nil {
		return nil, unauthorized()
	}
	tokenID, err := claims.TokenID()
	if err != nil {
		return nil, unauthorized()
	}
	churchID, err := claims.Church()
	if err != nil {
		return nil, unauthorized()
	}
	userID, err := claims.User()
	if err != nil {
		return nil, unauthorized()
	}

	rec, err := s.store.FindRefreshToken(ctx, tokenID)
	if err != nil {
		return nil, unauthorized()
	}
	if rec.Expired(s.now()) || rec.UserID != userID || !s.signer.RefreshMatches(refresh, rec.TokenHash) {
		return nil, unauthorized()
	}
	rc, err := s.signer.ParseRefresh(refresh)
	if err != nil || rc.Subject != tokenID.String() {
		return nil, unauthorized()
	}

	// role and name are re-read so promotions show up on refresh
	u, err := s.store.FindUser(ctx, churchID, userID)
	if err != nil {
		return nil, unauthorized()
	}
	next, err := s.signer.IssueAccess(subjectOf(tokenID, u))
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: next, User: dto.AuthUserOf(u)}, nil
}

/* ==========================
   Logout
========================== */

// RemoveToken deletes the refresh record keyed by the access token's sub. An expired
// access token is accepted so clients can always sign out.
func (s *AuthService) RemoveToken(ctx context.Context, access string) error {
	if err := s.ready(); err != nil {
		return err
	}
	claims, err := s.signer.ParseAccessIgnoringExpiry(strings.TrimSpace(access))
	if err != nil {
		return unauthorized()
	}
	tokenID, err := claims.TokenID()
	if err != nil {
		return unauthorized()
	}
	if err := s.store.DeleteRefreshToken(ctx, tokenID); err != nil {
		if repository.IsNotFound(err) {
			return unauthorized()
		}
		return err
	}
	return nil
}

// PurgeExpired removes refresh records past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredRefreshTokens(ctx, s.now())
}
