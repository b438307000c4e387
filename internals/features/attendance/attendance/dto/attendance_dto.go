package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"churchbook_backend/internals/features/attendance/attendance/model"
)

const DateLayout = "2006-01-02"

// defaultWindow is used by the list endpoints when no range is given.
const defaultWindow = 28 * 24 * time.Hour

type AttendanceEntry struct {
	UserID     uuid.UUID `json:"user_id"     validate:"required"`
	IsAttended bool      `json:"is_attended"`
	Note       *string   `json:"note"        validate:"omitempty,max=255"`
}

type CheckAttendanceRequest struct {
	Date    string            `json:"date"    validate:"required,datetime=2006-01-02"`
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

func (r CheckAttendanceRequest) Day() (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date 값이 올바르지 않습니다")
	}
	return d, nil
}

type RangeQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// Range resolves an inclusive day range. Missing bounds fall back to the four
// weeks ending today, where today is taken in now's location.
func (q RangeQuery) Range(now time.Time) (time.Time, time.Time, error) {
	y, m, d := now.Date()
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if s := strings.TrimSpace(q.To); s != "" {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to 값이 올바르지 않습니다")
		}
		to = t
	}
	from := to.Add(-defaultWindow)
	if s := strings.TrimSpace(q.From); s != "" {
		f, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from 값이 올바르지 않습니다")
		}
		from = f
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to 값은 from 이후여야 합니다")
	}
	return from, to, nil
}

type AttendanceResponse struct {
	ID         uuid.UUID `json:"id"`
	CellID     uuid.UUID `json:"cell_id"`
	UserID     uuid.UUID `json:"user_id"`
	AttendedOn string    `json:"attended_on"`
	IsAttended bool      `json:"is_attended"`
	Note       *string   `json:"note,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromModel(m *model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:         m.ID,
		CellID:     m.CellID,
		UserID:     m.UserID,
		AttendedOn: time.Time(m.AttendedOn).Format(DateLayout),
		IsAttended: m.IsAttended,
		Note:       m.Note,
		UpdatedAt:  m.UpdatedAt,
	}
}

func FromModels(rows []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// ToModels expands the request into rows for one cell and day.
func (r CheckAttendanceRequest) ToModels(churchID, cellID uuid.UUID, day time.Time) []model.AttendanceModel {
	rows := make([]model.AttendanceModel, 0, len(r.Entries))
	for _, e := range r.Entries {
		rows = append(rows, model.AttendanceModel{
			ChurchID:   churchID,
			CellID:     cellID,
			UserID:     e.UserID,
			AttendedOn: datatypes.Date(day),
			IsAttended: e.IsAttended,
			Note:       e.Note,
		})
	}
	return rows
}
