package service

import (
	"context"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchbook_backend/internals/features/notices/notice_comments/dto"
	"churchbook_backend/internals/features/notices/notice_comments/model"
	userService "churchbook_backend/internals/features/users/users/service"
	snapsvc "churchbook_backend/internals/features/users/users/snapshot"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgNoticeNotFound  = "공지사항을 찾을 수 없습니다"
	msgCommentNotFound = "댓글을 찾을 수 없습니다"
	msgParentMismatch  = "다른 공지사항의 댓글에는 답글을 달 수 없습니다"
	msgAuthorOnly      = "작성자만 수정/삭제 할 수 있습니다"
)

type CommentService struct {
	store repository.Store
}

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store}
}

// Create appends a comment to its sibling set: root comments of the notice, or the
// replies of ParentID. The sort number is one past the current maximum.
func (s *CommentService) Create(ctx context.Context, churchID, userID, noticeID uuid.UUID, req dto.CreateCommentRequest) (*model.NoticeCommentModel, error) {
	var out *model.NoticeCommentModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		notice, err := tx.FindNotice(ctx, churchID, noticeID)
		if err != nil {
			return helper.FromRepoError(err, msgNoticeNotFound)
		}
		if req.ParentID != nil {
			parent, err := tx.FindComment(ctx, churchID, *req.ParentID)
			if err != nil {
				return helper.FromRepoError(err, msgCommentNotFound)
			}
			if parent.NoticeID != notice.ID {
				return fiber.NewError(fiber.StatusBadRequest, msgParentMismatch)
			}
		}
		author, err := userService.FindUser(ctx, tx, churchID, userID)
		if err != nil {
			return err
		}

		last, err := tx.MaxCommentSortNumber(ctx, notice.ID, req.ParentID)
		if err != nil {
			return err
		}
		snap := snapsvc.FromUser(author)
		m := &model.NoticeCommentModel{
			ChurchID:        churchID,
			NoticeID:        notice.ID,
			ParentID:        req.ParentID,
			GroupSortNumber: last + 1,
			Content:         req.Content,
			Creator:         snap,
			LastModifier:    snap,
		}
		if err := tx.CreateComment(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// FindTree returns the root comments of a notice, each with its replies.
func (s *CommentService) FindTree(ctx context.Context, churchID, noticeID uuid.UUID) ([]dto.CommentNode, error) {
	if _, err := s.store.FindNotice(ctx, churchID, noticeID); err != nil {
		return nil, helper.FromRepoError(err, msgNoticeNotFound)
	}
	rows, err := s.store.ListComments(ctx, noticeID)
	if err != nil {
		return nil, err
	}

	children := make(map[uuid.UUID][]model.NoticeCommentModel)
	var roots []model.NoticeCommentModel
	for _, c := range rows {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var build func(level []model.NoticeCommentModel) []dto.CommentNode
	build = func(level []model.NoticeCommentModel) []dto.CommentNode {
		sort.SliceStable(level, func(i, j int) bool { return level[i].GroupSortNumber < level[j].GroupSortNumber })
		out := make([]dto.CommentNode, 0, len(level))
		for _, c := range level {
			out = append(out, dto.CommentNode{Comment: c, Replies: build(children[c.ID])})
		}
		return out
	}
	return build(roots), nil
}

func (s *CommentService) Update(ctx context.Context, churchID, userID, id uuid.UUID, req dto.UpdateCommentRequest) (*model.NoticeCommentModel, error) {
	var out *model.NoticeCommentModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := authored(ctx, tx, churchID, userID, id)
		if err != nil {
			return err
		}
		actor, err := userService.FindUser(ctx, tx, churchID, userID)
		if err != nil {
			return err
		}
		m.Content = req.Content
		m.LastModifier = snapsvc.FromUser(actor)
		if err := tx.SaveComment(ctx, m); err != nil {
			return helper.FromRepoError(err, msgCommentNotFound)
		}
		out = m
		return nil
	})
	return out, err
}

// Delete removes the comment and every reply below it. Remaining siblings keep their
// sort numbers.
func (s *CommentService) Delete(ctx context.Context, churchID, userID, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		m, err := authored(ctx, tx, churchID, userID, id)
		if err != nil {
			return err
		}
		ids := []uuid.UUID{m.ID}
		for i := 0; i < len(ids); i++ {
			replies, err := tx.ListReplies(ctx, ids[i])
			if err != nil {
				return err
			}
			for _, r := range replies {
				ids = append(ids, r.ID)
			}
		}
		if err := tx.DeleteComments(ctx, ids); err != nil {
			return err
		}
		zap.L().Debug("comments deleted", zap.String("root", m.ID.String()), zap.Int("count", len(ids)))
		return nil
	})
}

func authored(ctx context.Context, tx repository.Store, churchID, userID, id uuid.UUID) (*model.NoticeCommentModel, error) {
	m, err := tx.FindComment(ctx, churchID, id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgCommentNotFound)
	}
	if !m.Creator.IsAuthor(userID) {
		return nil, fiber.NewError(fiber.StatusForbidden, msgAuthorOnly)
	}
	return m, nil
}
