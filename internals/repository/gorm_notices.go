package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	commentModel "churchbook_backend/internals/features/notices/notice_comments/model"
	noticeModel "churchbook_backend/internals/features/notices/notices/model"
)

/* ===================== NOTICES ===================== */

func (s *GormStore) CreateNotice(ctx context.Context, m *noticeModel.NoticeModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create notice")
}

func (s *GormStore) SaveNotice(ctx context.Context, m *noticeModel.NoticeModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save notice")
}

func (s *GormStore) DeleteNotice(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&noticeModel.NoticeModel{}, "id = ?", id), "delete notice")
}

func (s *GormStore) FindNotice(ctx context.Context, churchID, id uuid.UUID) (*noticeModel.NoticeModel, error) {
	var m noticeModel.NoticeModel
	if err := first(s.conn(ctx).Where("church_id = ? AND id = ?", churchID, id), &m, "find notice"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListNotices(ctx context.Context, churchID uuid.UUID, p Page) ([]noticeModel.NoticeModel, int64, error) {
	q := s.conn(ctx).Model(&noticeModel.NoticeModel{}).Where("church_id = ?", churchID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "count notices")
	}
	var rows []noticeModel.NoticeModel
	if err := paged(q.Order("created_at DESC"), p).Find(&rows).Error; err != nil {
		return nil, 0, classify(err, "list notices")
	}
	return rows, total, nil
}

// IncrementNoticeViews is a single UPDATE so concurrent readers do not lose counts.
func (s *GormStore) IncrementNoticeViews(ctx context.Context, id uuid.UUID) error {
	res := s.conn(ctx).Model(&noticeModel.NoticeModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	return mustAffect(res, "increment notice views")
}

/* ===================== COMMENTS ===================== */

func (s *GormStore) CreateComment(ctx context.Context, m *commentModel.NoticeCommentModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create comment")
}

func (s *GormStore) SaveComment(ctx context.Context, m *commentModel.NoticeCommentModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save comment")
}

func (s *GormStore) DeleteComments(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.conn(ctx).
		Where("id = ANY(?::uuid[])", pq.Array(uuidStrings(ids))).
		Delete(&commentModel.NoticeCommentModel{}).Error
	return classify(err, "delete comments")
}

func (s *GormStore) DeleteCommentsByNotice(ctx context.Context, noticeID uuid.UUID) error {
	err := s.conn(ctx).Where("notice_id = ?", noticeID).Delete(&commentModel.NoticeCommentModel{}).Error
	return classify(err, "delete comments by notice")
}

func (s *GormStore) FindComment(ctx context.Context, churchID, id uuid.UUID) (*commentModel.NoticeCommentModel, error) {
	var m commentModel.NoticeCommentModel
	if err := first(s.conn(ctx).Where("church_id = ? AND id = ?", churchID, id), &m, "find comment"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListComments(ctx context.Context, noticeID uuid.UUID) ([]commentModel.NoticeCommentModel, error) {
	var rows []commentModel.NoticeCommentModel
	err := s.conn(ctx).
		Where("notice_id = ?", noticeID).
		Order("group_sort_number ASC, created_at ASC").
		Find(&rows).Error
	return rows, classify(err, "list comments")
}

func (s *GormStore) ListReplies(ctx context.Context, parentID uuid.UUID) ([]commentModel.NoticeCommentModel, error) {
	var rows []commentModel.NoticeCommentModel
	err := s.conn(ctx).
		Where("parent_id = ?", parentID).
		Order("group_sort_number ASC").
		Find(&rows).Error
	return rows, classify(err, "list replies")
}

func (s *GormStore) MaxCommentSortNumber(ctx context.Context, noticeID uuid.UUID, parentID *uuid.UUID) (int, error) {
	q := s.conn(ctx).Model(&commentModel.NoticeCommentModel{}).Where("notice_id = ?", noticeID)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	var n int
	if err := q.Select("COALESCE(MAX(group_sort_number), 0)").Scan(&n).Error; err != nil {
		return 0, classify(err, "max comment sort number")
	}
	return n, nil
}
