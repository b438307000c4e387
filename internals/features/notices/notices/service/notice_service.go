package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchbook_backend/internals/constants"
	"churchbook_backend/internals/features/notices/notices/dto"
	"churchbook_backend/internals/features/notices/notices/model"
	userService "churchbook_backend/internals/features/users/users/service"
	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgNoticeNotFound = "공지사항을 찾을 수 없습니다"
	msgNoticeForbid   = "작성자 또는 교역자만 수정/삭제 할 수 있습니다"
)

type NoticeService struct {
	store repository.Store
}

func NewNoticeService(store repository.Store) *NoticeService {
	return &NoticeService{store: store}
}

func (s *NoticeService) Create(ctx context.Context, churchID, userID uuid.UUID, req dto.CreateNoticeRequest) (*model.NoticeModel, error) {
	var out *model.NoticeModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		author, err := userService.FindUser(ctx, tx, churchID, userID)
		if err != nil {
			return err
		}
		snap := snapsvc.FromUser(author)
		m := &model.NoticeModel{
			ChurchID:     churchID,
			Title:        strings.TrimSpace(req.Title),
			Content:      req.Content,
			Creator:      snap,
			LastModifier: snap,
		}
		if err := tx.CreateNotice(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("notice created", zap.String("notice_id", out.ID.String()), zap.String("author", out.Creator.Name))
	return out, nil
}

func (s *NoticeService) FindAll(ctx context.Context, churchID uuid.UUID, p repository.Page) ([]model.NoticeModel, int64, error) {
	return s.store.ListNotices(ctx, churchID, p)
}

// FindByID counts a view and returns the notice with the new count.
func (s *NoticeService) FindByID(ctx context.Context, churchID, id uuid.UUID) (*model.NoticeModel, error) {
	var out *model.NoticeModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := tx.FindNotice(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgNoticeNotFound)
		}
		if err := tx.IncrementNoticeViews(ctx, m.ID); err != nil {
			return helper.FromRepoError(err, msgNoticeNotFound)
		}
		m.Views++
		out = m
		return nil
	})
	return out, err
}

func (s *NoticeService) Update(ctx context.Context, churchID, userID, id uuid.UUID, req dto.UpdateNoticeRequest) (*model.NoticeModel, error) {
	var out *model.NoticeModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, actor, err := s.editable(ctx, tx, churchID, userID, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			m.Title = strings.TrimSpace(*req.Title)
		}
		if req.Content != nil {
			m.Content = *req.Content
		}
		m.LastModifier = actor
		if err := tx.SaveNotice(ctx, m); err != nil {
			return helper.FromRepoError(err, msgNoticeNotFound)
		}
		out = m
		return nil
	})
	return out, err
}

// Delete removes the notice together with its comment tree.
func (s *NoticeService) Delete(ctx context.Context, churchID, userID, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		m, _, err := s.editable(ctx, tx, churchID, userID, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteCommentsByNotice(ctx, m.ID); err != nil {
			return err
		}
		if err := tx.DeleteNotice(ctx, m.ID); err != nil {
			return helper.FromRepoError(err, msgNoticeNotFound)
		}
		zap.L().Info("notice deleted", zap.String("notice_id", m.ID.String()), zap.String("by", userID.String()))
		return nil
	})
}

// editable loads the notice and the acting user; only the author or pastoral staff pass.
func (s *NoticeService) editable(ctx context.Context, tx repository.Store, churchID, userID, id uuid.UUID) (*model.NoticeModel, snapsvc.AuthorSnapshot, error) {
	m, err := tx.FindNotice(ctx, churchID, id)
	if err != nil {
		return nil, snapsvc.AuthorSnapshot{}, helper.FromRepoError(err, msgNoticeNotFound)
	}
	actor, err := userService.FindUser(ctx, tx, churchID, userID)
	if err != nil {
		return nil, snapsvc.AuthorSnapshot{}, err
	}
	if !m.Creator.IsAuthor(actor.ID) && !actor.Role.IsAtLeast(constants.RoleJuniorPastor) {
		return nil, snapsvc.AuthorSnapshot{}, fiber.NewError(fiber.StatusForbidden, msgNoticeForbid)
	}
	return m, snapsvc.FromUser(actor), nil
}
