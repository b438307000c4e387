package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"churchbook_backend/internals/features/users/auth/dto"
	authModel "churchbook_backend/internals/features/users/auth/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
	"churchbook_backend/internals/repository"
)

/* ==========================
   Const & Types
========================== */

const (
	msgUnauthorized   = "인증에 실패했습니다"
	msgSignerDisabled = "인증 설정이 올바르지 않습니다"
)

func unauthorized() error { return fiber.NewError(fiber.StatusUnauthorized, msgUnauthorized) }

type AuthService struct {
	store  repository.Store
	signer *helperAuth.Signer
	now    func() time.Time
}

// NewAuthService accepts a nil signer; every call then fails with 500 so a missing
// JWT secret surfaces at use time instead of at startup.
func NewAuthService(store repository.Store, signer *helperAuth.Signer) *AuthService {
	return &AuthService{store: store, signer: signer, now: func() time.Time { return time.Now().UTC() }}
}

func (s *AuthService) ready() error {
	if s.signer == nil {
		return fiber.NewError(fiber.StatusInternalServerError, msgSignerDisabled)
	}
	return nil
}

func subjectOf(tokenID uuid.UUID, u *userModel.UserModel) helperAuth.Subject {
	return helperAuth.Subject{
		TokenID:  tokenID,
		ChurchID: u.ChurchID,
		UserID:   u.ID,
		Name:     u.Name,
		Role:     u.Role,
	}
}

/* ==========================
   Login
========================== */

// Login checks the password and issues a token pair. The refresh token is persisted
// only as a keyed hash under a fresh token id that the access token carries in sub.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPair, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	u, err := s.store.FindUserByName(ctx, req.ChurchID, helper.NormalizeName(req.Name))
	if err != nil {
		if !repository.IsNotFound(err) {
			zap.L().Error("login lookup", zap.String("church_id", req.ChurchID.String()), zap.Error(err))
		}
		return nil, unauthorized()
	}
	if !u.HasPassword() {
		return nil, unauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized()
	}

	tokenID := uuid.New()
	refresh, exp, err := s.signer.IssueRefresh(tokenID)
	if err != nil {
		return nil, err
	}
	access, err := s.signer.IssueAccess(subjectOf(tokenID, u))
	if err != nil {
		return nil, err
	}

	rec := &authModel.RefreshTokenModel{
		ID:        tokenID,
		UserID:    u.ID,
		TokenHash: s.signer.HashRefresh(refresh),
		ExpiresAt: exp,
	}
	if err := s.store.CreateRefreshToken(ctx, rec); err != nil {
		zap.L().Error("store refresh token", zap.String("user_id", u.ID.String()), zap.Error(err))
		return nil, err
	}

	zap.L().Info("login", zap.String("user_id", u.ID.String()), zap.String("token_id", tokenID.String()))
	return &dto.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: exp,
		User:             dto.AuthUserOf(u),
	}, nil
}
