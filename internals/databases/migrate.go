package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

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

// AutoMigrate is a development convenience; production schemas are managed outside
// the service.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	models := []any{
		&churchModel.ChurchModel{},
		&userModel.UserModel{},
		&groupModel.GroupModel{},
		&cellModel.CellModel{},
		&noticeModel.NoticeModel{},
		&commentModel.NoticeCommentModel{},
		&calendarModel.CalendarEventModel{},
		&attendanceModel.AttendanceModel{},
		&authModel.RefreshTokenModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	log.Info("✅ AutoMigrate done", zap.Int("tables", len(models)))
	return nil
}
