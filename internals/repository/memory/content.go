package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	attendanceModel "churchbook_backend/internals/features/attendance/attendance/model"
	calendarModel "churchbook_backend/internals/features/calendars/events/model"
	commentModel "churchbook_backend/internals/features/notices/notice_comments/model"
	noticeModel "churchbook_backend/internals/features/notices/notices/model"
	authModel "churchbook_backend/internals/features/users/auth/model"
	"churchbook_backend/internals/repository"
)

/* ===================== NOTICES ===================== */

func (s *Store) CreateNotice(_ context.Context, m *noticeModel.NoticeModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.notices.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveNotice(_ context.Context, m *noticeModel.NoticeModel) error {
	return s.write(func(t *tables) error {
		m.UpdatedAt = now()
		t.notices.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteNotice(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.notices.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindNotice(_ context.Context, churchID, id uuid.UUID) (*noticeModel.NoticeModel, error) {
	var (
		m  noticeModel.NoticeModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.notices.get(id) })
	if !ok || m.ChurchID != churchID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) ListNotices(_ context.Context, churchID uuid.UUID, p repository.Page) ([]noticeModel.NoticeModel, int64, error) {
	var rows []noticeModel.NoticeModel
	s.read(func(t *tables) {
		rows = t.notices.filter(func(n *noticeModel.NoticeModel) bool { return n.ChurchID == churchID })
	})
	// newest first
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return window(rows, p), int64(len(rows)), nil
}

func (s *Store) IncrementNoticeViews(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		n, ok := t.notices.get(id)
		if !ok {
			return repository.ErrNotFound
		}
		n.Views++
		t.notices.put(id, n)
		return nil
	})
}

/* ===================== COMMENTS ===================== */

func (s *Store) CreateComment(_ context.Context, m *commentModel.NoticeCommentModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.comments.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveComment(_ context.Context, m *commentModel.NoticeCommentModel) error {
	return s.write(func(t *tables) error {
		m.UpdatedAt = now()
		t.comments.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteComments(_ context.Context, ids []uuid.UUID) error {
	return s.write(func(t *tables) error {
		for _, id := range ids {
			t.comments.del(id)
		}
		return nil
	})
}

func (s *Store) DeleteCommentsByNotice(_ context.Context, noticeID uuid.UUID) error {
	return s.write(func(t *tables) error {
		for _, c := range t.comments.filter(func(c *commentModel.NoticeCommentModel) bool { return c.NoticeID == noticeID }) {
			t.comments.del(c.ID)
		}
		return nil
	})
}

func (s *Store) FindComment(_ context.Context, churchID, id uuid.UUID) (*commentModel.NoticeCommentModel, error) {
	var (
		m  commentModel.NoticeCommentModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.comments.get(id) })
	if !ok || m.ChurchID != churchID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) ListComments(_ context.Context, noticeID uuid.UUID) ([]commentModel.NoticeCommentModel, error) {
	var rows []commentModel.NoticeCommentModel
	s.read(func(t *tables) {
		rows = t.comments.filter(func(c *commentModel.NoticeCommentModel) bool { return c.NoticeID == noticeID })
	})
	sortComments(rows)
	return rows, nil
}

func (s *Store) ListReplies(_ context.Context, parentID uuid.UUID) ([]commentModel.NoticeCommentModel, error) {
	var rows []commentModel.NoticeCommentModel
	s.read(func(t *tables) {
		rows = t.comments.filter(func(c *commentModel.NoticeCommentModel) bool {
			return c.ParentID != nil && *c.ParentID == parentID
		})
	})
	sortComments(rows)
	return rows, nil
}

func (s *Store) MaxCommentSortNumber(_ context.Context, noticeID uuid.UUID, parentID *uuid.UUID) (int, error) {
	n := 0
	s.read(func(t *tables) {
		for _, c := range t.comments.filter(func(c *commentModel.NoticeCommentModel) bool {
			if c.NoticeID != noticeID {
				return false
			}
			if parentID == nil {
				return c.ParentID == nil
			}
			return c.ParentID != nil && *c.ParentID == *parentID
		}) {
			if c.GroupSortNumber > n {
				n = c.GroupSortNumber
			}
		}
	})
	return n, nil
}

func sortComments(rows []commentModel.NoticeCommentModel) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].GroupSortNumber < rows[j].GroupSortNumber })
}

/* ===================== CALENDAR ===================== */

func (s *Store) CreateEvent(_ context.Context, m *calendarModel.CalendarEventModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.events.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveEvent(_ context.Context, m *calendarModel.CalendarEventModel) error {
	return s.write(func(t *tables) error {
		m.UpdatedAt = now()
		t.events.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteEvent(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.events.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindEvent(_ context.Context, churchID, id uuid.UUID) (*calendarModel.CalendarEventModel, error) {
	var (
		m  calendarModel.CalendarEventModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.events.get(id) })
	if !ok || m.ChurchID != churchID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) ListEvents(_ context.Context, churchID uuid.UUID, from, to time.Time) ([]calendarModel.CalendarEventModel, error) {
	var rows []calendarModel.CalendarEventModel
	s.read(func(t *tables) {
		rows = t.events.filter(func(e *calendarModel.CalendarEventModel) bool {
			return e.ChurchID == churchID && e.Overlaps(from, to)
		})
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StartAt.Before(rows[j].StartAt) })
	return rows, nil
}

/* ===================== ATTENDANCE ===================== */

func sameDay(a, b time.Time) bool {
	return attendanceModel.Day(a).Equal(attendanceModel.Day(b))
}

func (s *Store) UpsertAttendances(_ context.Context, rows []attendanceModel.AttendanceModel) error {
	return s.write(func(t *tables) error {
		for i := range rows {
			r := &rows[i]
			existing := t.attendances.filter(func(a *attendanceModel.AttendanceModel) bool {
				return a.UserID == r.UserID && sameDay(time.Time(a.AttendedOn), time.Time(r.AttendedOn))
			})
			if len(existing) > 0 {
				r.ID = existing[0].ID
				r.CreatedAt = existing[0].CreatedAt
			} else {
				if r.ID == uuid.Nil {
					r.ID = uuid.New()
				}
				r.CreatedAt = now()
			}
			r.UpdatedAt = now()
			t.attendances.put(r.ID, *r)
		}
		return nil
	})
}

func inRange(d, from, to time.Time) bool {
	d = attendanceModel.Day(d)
	return !d.Before(attendanceModel.Day(from)) && !d.After(attendanceModel.Day(to))
}

func (s *Store) ListAttendanceByCell(_ context.Context, cellID uuid.UUID, from, to time.Time) ([]attendanceModel.AttendanceModel, error) {
	return s.listAttendance(func(a *attendanceModel.AttendanceModel) bool {
		return a.CellID == cellID && inRange(time.Time(a.AttendedOn), from, to)
	}), nil
}

func (s *Store) ListAttendanceByUser(_ context.Context, userID uuid.UUID, from, to time.Time) ([]attendanceModel.AttendanceModel, error) {
	return s.listAttendance(func(a *attendanceModel.AttendanceModel) bool {
		return a.UserID == userID && inRange(time.Time(a.AttendedOn), from, to)
	}), nil
}

func (s *Store) listAttendance(keep func(*attendanceModel.AttendanceModel) bool) []attendanceModel.AttendanceModel {
	var rows []attendanceModel.AttendanceModel
	s.read(func(t *tables) { rows = t.attendances.filter(keep) })
	sort.SliceStable(rows, func(i, j int) bool {
		return time.Time(rows[i].AttendedOn).Before(time.Time(rows[j].AttendedOn))
	})
	return rows
}

/* ===================== REFRESH TOKENS ===================== */

func (s *Store) CreateRefreshToken(_ context.Context, m *authModel.RefreshTokenModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		} else if t.tokens.has(m.ID) {
			return conflict("refresh token " + m.ID.String())
		}
		m.CreatedAt = now()
		t.tokens.put(m.ID, *m)
		return nil
	})
}

func (s *Store) FindRefreshToken(_ context.Context, id uuid.UUID) (*authModel.RefreshTokenModel, error) {
	var (
		m  authModel.RefreshTokenModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.tokens.get(id) })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) DeleteRefreshToken(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.tokens.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) DeleteExpiredRefreshTokens(_ context.Context, at time.Time) (int64, error) {
	var n int64
	err := s.write(func(t *tables) error {
		for _, tok := range t.tokens.filter(func(m *authModel.RefreshTokenModel) bool { return m.Expired(at) }) {
			t.tokens.del(tok.ID)
			n++
		}
		return nil
	})
	return n, err
}
