package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"churchbook_backend/internals/constants"
	"churchbook_backend/internals/features/churches/churches/dto"
	"churchbook_backend/internals/features/churches/churches/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgChurchNotFound = "교회를 찾을 수 없습니다"
	msgChurchHasUsers = "소속 사용자가 있는 교회는 삭제할 수 없습니다"
)

type ChurchService struct {
	store repository.Store
}

func NewChurchService(store repository.Store) *ChurchService {
	return &ChurchService{store: store}
}

// Create stores the church and, when requested, its first pastor account.
func (s *ChurchService) Create(ctx context.Context, req dto.CreateChurchRequest) (*model.ChurchModel, error) {
	m := &model.ChurchModel{
		Name:           strings.TrimSpace(req.Name),
		Address:        req.Address,
		ManagerName:    strings.TrimSpace(req.ManagerName),
		ManagerContact: strings.TrimSpace(req.ManagerContact),
	}

	var hash []byte
	if req.Pastor != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Pastor.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "비밀번호를 처리할 수 없습니다")
		}
		hash = h
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.CreateChurch(ctx, m); err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		if req.Pastor == nil {
			return nil
		}
		pw := string(hash)
		pastor := &userModel.UserModel{
			ChurchID: m.ID,
			Name:     helper.NormalizeName(req.Pastor.Name),
			Password: &pw,
			Role:     constants.RolePastor,
			Rank:     constants.RankPastor,
		}
		return helper.FromRepoError(tx.CreateUser(ctx, pastor), msgChurchNotFound)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("church created", zap.String("church_id", m.ID.String()), zap.String("name", m.Name))
	return m, nil
}

func (s *ChurchService) FindAll(ctx context.Context, p repository.Page) ([]model.ChurchModel, int64, error) {
	return s.store.ListChurches(ctx, p)
}

func (s *ChurchService) FindByID(ctx context.Context, id uuid.UUID) (*model.ChurchModel, error) {
	m, err := s.store.FindChurch(ctx, id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgChurchNotFound)
	}
	return m, nil
}

func (s *ChurchService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateChurchRequest) (*model.ChurchModel, error) {
	var out *model.ChurchModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := tx.FindChurch(ctx, id)
		if err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		req.Apply(m)
		if err := tx.SaveChurch(ctx, m); err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		out = m
		return nil
	})
	return out, err
}

func (s *ChurchService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.FindChurch(ctx, id); err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		n, err := tx.CountUsers(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusBadRequest, msgChurchHasUsers)
		}
		return helper.FromRepoError(tx.DeleteChurch(ctx, id), msgChurchNotFound)
	})
}
