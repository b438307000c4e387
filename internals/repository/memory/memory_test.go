package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"churchbook_backend/internals/constants"
	attendanceModel "churchbook_backend/internals/features/attendance/attendance/model"
	commentModel "churchbook_backend/internals/features/notices/notice_comments/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	"churchbook_backend/internals/repository"
)

func seedUser(t *testing.T, s *Store, churchID uuid.UUID, name string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{ChurchID: churchID, Name: name, Role: constants.RoleMember, Rank: constants.RankSaint}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestTransaction_RollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	s := New()
	churchID := uuid.New()
	u := seedUser(t, s, churchID, "김철수")

	errBoom := errors.New("boom")
	err := s.Transaction(ctx, func(tx repository.Store) error {
		u.Role = constants.RoleLeader
		require.NoError(t, tx.SaveUser(ctx, u))
		seedUser(t, s, churchID, "이영희")
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	got, err := s.FindUser(ctx, churchID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleMember, got.Role)

	_, err = s.FindUserByName(ctx, churchID, "이영희")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	commits, rollbacks := s.TxStats()
	assert.Equal(t, 0, commits)
	assert.Equal(t, 1, rollbacks)
}

func TestTransaction_PanicRollsBackAndRepanics(t *testing.T) {
	ctx := context.Background()
	s := New()
	churchID := uuid.New()

	assert.Panics(t, func() {
		_ = s.Transaction(ctx, func(tx repository.Store) error {
			seedUser(t, s, churchID, "박민수")
			panic("boom")
		})
	})

	n, err := s.CountUsers(ctx, churchID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTransaction_CommitAndNesting(t *testing.T) {
	ctx := context.Background()
	s := New()
	churchID := uuid.New()

	err := s.Transaction(ctx, func(tx repository.Store) error {
		return tx.Transaction(ctx, func(inner repository.Store) error {
			return inner.CreateUser(ctx, &userModel.UserModel{ChurchID: churchID, Name: "최지훈", Role: constants.RoleNewbie, Rank: constants.RankSaint})
		})
	})
	require.NoError(t, err)

	commits, rollbacks := s.TxStats()
	assert.Equal(t, 1, commits)
	assert.Zero(t, rollbacks)

	_, err = s.FindUserByName(ctx, churchID, "최지훈")
	assert.NoError(t, err)
}

func TestUsers_NameUniquePerChurch(t *testing.T) {
	ctx := context.Background()
	s := New()
	churchA, churchB := uuid.New(), uuid.New()
	seedUser(t, s, churchA, "홍길동")

	err := s.CreateUser(ctx, &userModel.UserModel{ChurchID: churchA, Name: "홍길동"})
	assert.True(t, repository.IsConflict(err))

	assert.NoError(t, s.CreateUser(ctx, &userModel.UserModel{ChurchID: churchB, Name: "홍길동", Role: constants.RoleMember, Rank: constants.RankSaint}))
}

func TestFindUser_ScopedToChurch(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, uuid.New(), "정수진")

	_, err := s.FindUser(ctx, uuid.New(), u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListUsers_FilterAndWindow(t *testing.T) {
	ctx := context.Background()
	s := New()
	churchID := uuid.New()
	for _, n := range []string{"김가", "김나", "김다", "이라"} {
		seedUser(t, s, churchID, n)
	}

	rows, total, err := s.ListUsers(ctx, churchID, repository.UserFilter{NamePrefix: "김"}, repository.Page{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "김나", rows[0].Name)

	rows, _, err = s.ListUsers(ctx, churchID, repository.UserFilter{}, repository.Page{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMaxCommentSortNumber_PerSiblingSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	noticeID := uuid.New()
	root := &commentModel.NoticeCommentModel{NoticeID: noticeID, GroupSortNumber: 4}
	require.NoError(t, s.CreateComment(ctx, root))
	require.NoError(t, s.CreateComment(ctx, &commentModel.NoticeCommentModel{NoticeID: noticeID, ParentID: &root.ID, GroupSortNumber: 2}))

	n, err := s.MaxCommentSortNumber(ctx, noticeID, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.MaxCommentSortNumber(ctx, noticeID, &root.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.MaxCommentSortNumber(ctx, uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpsertAttendances_OverwritesSameDay(t *testing.T) {
	ctx := context.Background()
	s := New()
	cellID, userID := uuid.New(), uuid.New()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertAttendances(ctx, []attendanceModel.AttendanceModel{
		{CellID: cellID, UserID: userID, AttendedOn: datatypes.Date(day), IsAttended: false},
	}))
	require.NoError(t, s.UpsertAttendances(ctx, []attendanceModel.AttendanceModel{
		{CellID: cellID, UserID: userID, AttendedOn: datatypes.Date(day.Add(9 * time.Hour)), IsAttended: true},
	}))

	rows, err := s.ListAttendanceByCell(ctx, cellID, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsAttended)
}
