package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	attendanceModel "churchbook_backend/internals/features/attendance/attendance/model"
	calendarModel "churchbook_backend/internals/features/calendars/events/model"
	authModel "churchbook_backend/internals/features/users/auth/model"
)

/* ===================== CALENDAR ===================== */

func (s *GormStore) CreateEvent(ctx context.Context, m *calendarModel.CalendarEventModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create event")
}

func (s *GormStore) SaveEvent(ctx context.Context, m *calendarModel.CalendarEventModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save event")
}

func (s *GormStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&calendarModel.CalendarEventModel{}, "id = ?", id), "delete event")
}

func (s *GormStore) FindEvent(ctx context.Context, churchID, id uuid.UUID) (*calendarModel.CalendarEventModel, error) {
	var m calendarModel.CalendarEventModel
	if err := first(s.conn(ctx).Where("church_id = ? AND id = ?", churchID, id), &m, "find event"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListEvents(ctx context.Context, churchID uuid.UUID, from, to time.Time) ([]calendarModel.CalendarEventModel, error) {
	var rows []calendarModel.CalendarEventModel
	err := s.conn(ctx).
		Where("church_id = ? AND start_at < ? AND end_at >= ?", churchID, to, from).
		Order("start_at ASC").
		Find(&rows).Error
	return rows, classify(err, "list events")
}

/* ===================== ATTENDANCE ===================== */

func (s *GormStore) UpsertAttendances(ctx context.Context, rows []attendanceModel.AttendanceModel) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "attended_on"}},
		DoUpdates: clause.AssignmentColumns([]string{"cell_id", "is_attended", "note", "updated_at"}),
	}).Create(&rows).Error
	return classify(err, "upsert attendances")
}

func (s *GormStore) ListAttendanceByCell(ctx context.Context, cellID uuid.UUID, from, to time.Time) ([]attendanceModel.AttendanceModel, error) {
	var rows []attendanceModel.AttendanceModel
	err := s.conn(ctx).
		Where("cell_id = ? AND attended_on BETWEEN ? AND ?", cellID, from, to).
		Order("attended_on ASC").
		Find(&rows).Error
	return rows, classify(err, "list attendance by cell")
}

func (s *GormStore) ListAttendanceByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]attendanceModel.AttendanceModel, error) {
	var rows []attendanceModel.AttendanceModel
	err := s.conn(ctx).
		Where("user_id = ? AND attended_on BETWEEN ? AND ?", userID, from, to).
		Order("attended_on ASC").
		Find(&rows).Error
	return rows, classify(err, "list attendance by user")
}

/* ===================== REFRESH TOKENS ===================== */

func (s *GormStore) CreateRefreshToken(ctx context.Context, m *authModel.RefreshTokenModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create refresh token")
}

func (s *GormStore) FindRefreshToken(ctx context.Context, id uuid.UUID) (*authModel.RefreshTokenModel, error) {
	var m authModel.RefreshTokenModel
	if err := first(s.conn(ctx).Where("id = ?", id), &m, "find refresh token"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) DeleteRefreshToken(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&authModel.RefreshTokenModel{}, "id = ?", id), "delete refresh token")
}

func (s *GormStore) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res := s.conn(ctx).Where("expires_at <= ?", now).Delete(&authModel.RefreshTokenModel{})
	return res.RowsAffected, classify(res.Error, "delete expired refresh tokens")
}

var _ Store = (*GormStore)(nil)
