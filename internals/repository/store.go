// Package repository is the persistence boundary. Every write-bearing operation runs
// inside Store.Transaction and receives the transaction-bound Store explicitly.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"churchbook_backend/internals/constants"
	attendanceModel "churchbook_backend/internals/features/attendance/attendance/model"
	calendarModel "churchbook_backend/internals/features/calendars/events/model"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	cellModel "churchbook_backend/internals/features/communities/cells/model"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	commentModel "churchbook_backend/internals/features/notices/notice_comments/model"
	noticeModel "churchbook_backend/internals/features/notices/notices/model"
	authModel "churchbook_backend/internals/features/users/auth/model"
	userModel "churchbook_backend/internals/features/users/users/model"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("unique constraint violated")
	ErrForeignKey = errors.New("foreign key constraint violated")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is an offset/limit window. A zero Limit means DefaultLimit.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

type UserFilter struct {
	Role       *constants.Role
	CellID     *uuid.UUID
	NamePrefix string
	LongAbsent *bool
}

type CellFilter struct {
	GroupID *uuid.UUID
}

/* ===================== STORES ===================== */

type ChurchStore interface {
	CreateChurch(ctx context.Context, m *churchModel.ChurchModel) error
	SaveChurch(ctx context.Context, m *churchModel.ChurchModel) error
	DeleteChurch(ctx context.Context, id uuid.UUID) error
	FindChurch(ctx context.Context, id uuid.UUID) (*churchModel.ChurchModel, error)
	ListChurches(ctx context.Context, p Page) ([]churchModel.ChurchModel, int64, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, m *userModel.UserModel) error
	SaveUser(ctx context.Context, m *userModel.UserModel) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	FindUser(ctx context.Context, churchID, id uuid.UUID) (*userModel.UserModel, error)
	FindUserByName(ctx context.Context, churchID uuid.UUID, name string) (*userModel.UserModel, error)
	FindUsersByIDs(ctx context.Context, churchID uuid.UUID, ids []uuid.UUID) ([]userModel.UserModel, error)
	ListUsers(ctx context.Context, churchID uuid.UUID, f UserFilter, p Page) ([]userModel.UserModel, int64, error)
	CountUsers(ctx context.Context, churchID uuid.UUID) (int64, error)
	// ListCellMembers returns every user whose cell_id is cellID, the leader included.
	ListCellMembers(ctx context.Context, cellID uuid.UUID) ([]userModel.UserModel, error)
}

type GroupStore interface {
	CreateGroup(ctx context.Context, m *groupModel.GroupModel) error
	SaveGroup(ctx context.Context, m *groupModel.GroupModel) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	FindGroup(ctx context.Context, churchID, id uuid.UUID) (*groupModel.GroupModel, error)
	FindGroupByName(ctx context.Context, churchID uuid.UUID, name string) (*groupModel.GroupModel, error)
	ListGroups(ctx context.Context, churchID uuid.UUID, p Page) ([]groupModel.GroupModel, int64, error)
	// ListGroupsHeadedBy returns groups where userID is leader or sub-leader.
	ListGroupsHeadedBy(ctx context.Context, userID uuid.UUID) ([]groupModel.GroupModel, error)
}

type CellStore interface {
	CreateCell(ctx context.Context, m *cellModel.CellModel) error
	SaveCell(ctx context.Context, m *cellModel.CellModel) error
	DeleteCell(ctx context.Context, id uuid.UUID) error
	FindCell(ctx context.Context, churchID, id uuid.UUID) (*cellModel.CellModel, error)
	FindCellByName(ctx context.Context, churchID uuid.UUID, name string) (*cellModel.CellModel, error)
	ListCells(ctx context.Context, churchID uuid.UUID, f CellFilter, p Page) ([]cellModel.CellModel, int64, error)
	ListCellsLedBy(ctx context.Context, userID uuid.UUID) ([]cellModel.CellModel, error)
	ListCellsInGroup(ctx context.Context, groupID uuid.UUID) ([]cellModel.CellModel, error)
}

type NoticeStore interface {
	CreateNotice(ctx context.Context, m *noticeModel.NoticeModel) error
	SaveNotice(ctx context.Context, m *noticeModel.NoticeModel) error
	DeleteNotice(ctx context.Context, id uuid.UUID) error
	FindNotice(ctx context.Context, churchID, id uuid.UUID) (*noticeModel.NoticeModel, error)
	// ListNotices is newest first.
	ListNotices(ctx context.Context, churchID uuid.UUID, p Page) ([]noticeModel.NoticeModel, int64, error)
	IncrementNoticeViews(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, m *commentModel.NoticeCommentModel) error
	SaveComment(ctx context.Context, m *commentModel.NoticeCommentModel) error
	DeleteComments(ctx context.Context, ids []uuid.UUID) error
	DeleteCommentsByNotice(ctx context.Context, noticeID uuid.UUID) error
	FindComment(ctx context.Context, churchID, id uuid.UUID) (*commentModel.NoticeCommentModel, error)
	// ListComments returns the whole tree of a notice ordered by group_sort_number.
	ListComments(ctx context.Context, noticeID uuid.UUID) ([]commentModel.NoticeCommentModel, error)
	ListReplies(ctx context.Context, parentID uuid.UUID) ([]commentModel.NoticeCommentModel, error)
	// MaxCommentSortNumber is 0 when the sibling set is empty. A nil parentID means root comments.
	MaxCommentSortNumber(ctx context.Context, noticeID uuid.UUID, parentID *uuid.UUID) (int, error)
}

type CalendarStore interface {
	CreateEvent(ctx context.Context, m *calendarModel.CalendarEventModel) error
	SaveEvent(ctx context.Context, m *calendarModel.CalendarEventModel) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	FindEvent(ctx context.Context, churchID, id uuid.UUID) (*calendarModel.CalendarEventModel, error)
	// ListEvents returns events overlapping [from, to), ordered by start_at.
	ListEvents(ctx context.Context, churchID uuid.UUID, from, to time.Time) ([]calendarModel.CalendarEventModel, error)
}

type AttendanceStore interface {
	// UpsertAttendances inserts or overwrites rows keyed by (user_id, attended_on).
	UpsertAttendances(ctx context.Context, rows []attendanceModel.AttendanceModel) error
	ListAttendanceByCell(ctx context.Context, cellID uuid.UUID, from, to time.Time) ([]attendanceModel.AttendanceModel, error)
	ListAttendanceByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]attendanceModel.AttendanceModel, error)
}

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, m *authModel.RefreshTokenModel) error
	FindRefreshToken(ctx context.Context, id uuid.UUID) (*authModel.RefreshTokenModel, error)
	DeleteRefreshToken(ctx context.Context, id uuid.UUID) error
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// Store is the full persistence surface.
type Store interface {
	ChurchStore
	UserStore
	GroupStore
	CellStore
	NoticeStore
	CommentStore
	CalendarStore
	AttendanceStore
	TokenStore

	// Transaction runs fn with a Store bound to one transaction. A nil return commits;
	// an error or a panic rolls back. Calling Transaction on a bound Store runs fn in
	// the same transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
