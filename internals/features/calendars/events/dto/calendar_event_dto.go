package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"churchbook_backend/internals/features/calendars/events/model"
	noticeDto "churchbook_backend/internals/features/notices/notices/dto"
)

type CreateEventRequest struct {
	Title   string         `json:"title"    validate:"required,max=200"`
	Content *string        `json:"content"`
	StartAt time.Time      `json:"start_at" validate:"required"`
	EndAt   time.Time      `json:"end_at"   validate:"required"`
	AllDay  bool           `json:"all_day"`
	Meta    datatypes.JSON `json:"meta"`
}

type UpdateEventRequest struct {
	Title   *string         `json:"title"   validate:"omitempty,min=1,max=200"`
	Content *string         `json:"content"`
	StartAt *time.Time      `json:"start_at"`
	EndAt   *time.Time      `json:"end_at"`
	AllDay  *bool           `json:"all_day"`
	Meta    *datatypes.JSON `json:"meta"`
}

func (r *UpdateEventRequest) Apply(m *model.CalendarEventModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		m.Content = r.Content
	}
	if r.StartAt != nil {
		m.StartAt = *r.StartAt
	}
	if r.EndAt != nil {
		m.EndAt = *r.EndAt
	}
	if r.AllDay != nil {
		m.AllDay = *r.AllDay
	}
	if r.Meta != nil {
		m.Meta = *r.Meta
	}
}

/* =========
   Query: ?from=&to= or ?year=&month=
   ========= */

type EventQuery struct {
	From  string `query:"from"`
	To    string `query:"to"`
	Year  string `query:"year"`
	Month string `query:"month"`
}

const dateLayout = "2006-01-02"

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

// Range resolves the query to a half-open window [from, to). With no parameters it is
// the month containing now.
func (q EventQuery) Range(now time.Time) (time.Time, time.Time, error) {
	from, to := strings.TrimSpace(q.From), strings.TrimSpace(q.To)
	if from != "" || to != "" {
		if from == "" || to == "" {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from, to 값을 함께 입력해야 합니다")
		}
		f, err := parseTime(from)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from 값이 올바르지 않습니다")
		}
		t, err := parseTime(to)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to 값이 올바르지 않습니다")
		}
		if !f.Before(t) {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to 값은 from 이후여야 합니다")
		}
		return f, t, nil
	}

	year, month := now.Year(), int(now.Month())
	if s := strings.TrimSpace(q.Year); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1900 || y > 9999 {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "year 값이 올바르지 않습니다")
		}
		year = y
	}
	if s := strings.TrimSpace(q.Month); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "month 값이 올바르지 않습니다")
		}
		month = m
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0), nil
}

type EventResponse struct {
	ID        uuid.UUID                `json:"id"`
	Title     string                   `json:"title"`
	Content   *string                  `json:"content,omitempty"`
	StartAt   time.Time                `json:"start_at"`
	EndAt     time.Time                `json:"end_at"`
	AllDay    bool                     `json:"all_day"`
	Meta      datatypes.JSON           `json:"meta,omitempty"`
	CreatedBy noticeDto.AuthorResponse `json:"created_by"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func FromModel(m *model.CalendarEventModel) EventResponse {
	return EventResponse{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		StartAt:   m.StartAt,
		EndAt:     m.EndAt,
		AllDay:    m.AllDay,
		Meta:      m.Meta,
		CreatedBy: noticeDto.AuthorOf(m.Creator),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.CalendarEventModel) []EventResponse {
	out := make([]EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
