// Package memory is an in-memory repository.Store for tests and local runs. Transactions
// are serialised and restore a snapshot on rollback.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	attendanceModel "churchbook_backend/internals/features/attendance/attendance/model"
	calendarModel "churchbook_backend/internals/features/calendars/events/model"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	cellModel "churchbook_backend/internals/features/communities/cells/model"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	commentModel "churchbook_backend/internals/features/notices/notice_comments/model"
	noticeModel "churchbook_backend/internals/features/notices/notices/model"
	authModel "churchbook_backend/internals/features/users/auth/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	"churchbook_backend/internals/repository"
)

type tables struct {
	churches    *table[churchModel.ChurchModel]
	users       *table[userModel.UserModel]
	groups      *table[groupModel.GroupModel]
	cells       *table[cellModel.CellModel]
	notices     *table[noticeModel.NoticeModel]
	comments    *table[commentModel.NoticeCommentModel]
	events      *table[calendarModel.CalendarEventModel]
	attendances *table[attendanceModel.AttendanceModel]
	tokens      *table[authModel.RefreshTokenModel]
}

func newTables() *tables {
	return &tables{
		churches:    newTable[churchModel.ChurchModel](),
		users:       newTable[userModel.UserModel](),
		groups:      newTable[groupModel.GroupModel](),
		cells:       newTable[cellModel.CellModel](),
		notices:     newTable[noticeModel.NoticeModel](),
		comments:    newTable[commentModel.NoticeCommentModel](),
		events:      newTable[calendarModel.CalendarEventModel](),
		attendances: newTable[attendanceModel.AttendanceModel](),
		tokens:      newTable[authModel.RefreshTokenModel](),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		churches:    t.churches.clone(),
		users:       t.users.clone(),
		groups:      t.groups.clone(),
		cells:       t.cells.clone(),
		notices:     t.notices.clone(),
		comments:    t.comments.clone(),
		events:      t.events.clone(),
		attendances: t.attendances.clone(),
		tokens:      t.tokens.clone(),
	}
}

type state struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    *tables

	commits   int
	rollbacks int
}

// Store is safe for concurrent use. Reads outside a transaction observe uncommitted
// writes of a running one.
type Store struct {
	st   *state
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{st: &state{t: newTables()}}
}

func now() time.Time { return time.Now().UTC() }

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}
	s.st.txMu.Lock()
	defer s.st.txMu.Unlock()

	s.st.mu.RLock()
	snap := s.st.t.clone()
	s.st.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
		if err != nil {
			s.restore(snap)
			return
		}
		s.st.mu.Lock()
		s.st.commits++
		s.st.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&Store{st: s.st, inTx: true})
}

func (s *Store) restore(snap *tables) {
	s.st.mu.Lock()
	s.st.t = snap
	s.st.rollbacks++
	s.st.mu.Unlock()
}

// TxStats reports how many transactions committed and rolled back.
func (s *Store) TxStats() (commits, rollbacks int) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	return s.st.commits, s.st.rollbacks
}

func (s *Store) read(fn func(t *tables)) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	fn(s.st.t)
}

func (s *Store) write(fn func(t *tables) error) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return fn(s.st.t)
}

func conflict(what string) error {
	return errors.Wrapf(repository.ErrConflict, "%s already exists", what)
}

/* ===================== CHURCHES ===================== */

func (s *Store) CreateChurch(_ context.Context, m *churchModel.ChurchModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		} else if t.churches.has(m.ID) {
			return conflict("church " + m.ID.String())
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.churches.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveChurch(_ context.Context, m *churchModel.ChurchModel) error {
	return s.write(func(t *tables) error {
		m.UpdatedAt = now()
		t.churches.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteChurch(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.churches.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindChurch(_ context.Context, id uuid.UUID) (*churchModel.ChurchModel, error) {
	var (
		m  churchModel.ChurchModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.churches.get(id) })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) ListChurches(_ context.Context, p repository.Page) ([]churchModel.ChurchModel, int64, error) {
	var rows []churchModel.ChurchModel
	s.read(func(t *tables) { rows = t.churches.filter(nil) })
	return window(rows, p), int64(len(rows)), nil
}

/* ===================== USERS ===================== */

func userNameTaken(t *tables, m *userModel.UserModel) bool {
	return t.users.exists(func(u *userModel.UserModel) bool {
		return u.ID != m.ID && u.ChurchID == m.ChurchID && u.Name == m.Name
	})
}

func (s *Store) CreateUser(_ context.Context, m *userModel.UserModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		} else if t.users.has(m.ID) {
			return conflict("user " + m.ID.String())
		}
		if userNameTaken(t, m) {
			return conflict("user " + m.Name)
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.users.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveUser(_ context.Context, m *userModel.UserModel) error {
	return s.write(func(t *tables) error {
		if userNameTaken(t, m) {
			return conflict("user " + m.Name)
		}
		m.UpdatedAt = now()
		t.users.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.users.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindUser(_ context.Context, churchID, id uuid.UUID) (*userModel.UserModel, error) {
	var (
		m  userModel.UserModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.users.get(id) })
	if !ok || m.ChurchID != churchID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) FindUserByName(_ context.Context, churchID uuid.UUID, name string) (*userModel.UserModel, error) {
	var rows []userModel.UserModel
	s.read(func(t *tables) {
		rows = t.users.filter(func(u *userModel.UserModel) bool {
			return u.ChurchID == churchID && u.Name == name
		})
	})
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (s *Store) FindUsersByIDs(_ context.Context, churchID uuid.UUID, ids []uuid.UUID) ([]userModel.UserModel, error) {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var rows []userModel.UserModel
	s.read(func(t *tables) {
		rows = t.users.filter(func(u *userModel.UserModel) bool {
			_, ok := want[u.ID]
			return ok && u.ChurchID == churchID
		})
	})
	sortUsersByName(rows)
	return rows, nil
}

func (s *Store) ListUsers(_ context.Context, churchID uuid.UUID, f repository.UserFilter, p repository.Page) ([]userModel.UserModel, int64, error) {
	prefix := strings.TrimSpace(f.NamePrefix)
	var rows []userModel.UserModel
	s.read(func(t *tables) {
		rows = t.users.filter(func(u *userModel.UserModel) bool {
			switch {
			case u.ChurchID != churchID:
				return false
			case f.Role != nil && u.Role != *f.Role:
				return false
			case f.CellID != nil && !u.InCell(*f.CellID):
				return false
			case prefix != "" && !strings.HasPrefix(u.Name, prefix):
				return false
			case f.LongAbsent != nil && u.IsLongAbsenced != *f.LongAbsent:
				return false
			}
			return true
		})
	})
	sortUsersByName(rows)
	return window(rows, p), int64(len(rows)), nil
}

func (s *Store) CountUsers(_ context.Context, churchID uuid.UUID) (int64, error) {
	var n int64
	s.read(func(t *tables) {
		n = int64(len(t.users.filter(func(u *userModel.UserModel) bool { return u.ChurchID == churchID })))
	})
	return n, nil
}

func (s *Store) ListCellMembers(_ context.Context, cellID uuid.UUID) ([]userModel.UserModel, error) {
	var rows []userModel.UserModel
	s.read(func(t *tables) {
		rows = t.users.filter(func(u *userModel.UserModel) bool { return u.InCell(cellID) })
	})
	sortUsersByName(rows)
	return rows, nil
}

func sortUsersByName(rows []userModel.UserModel) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
}

/* ===================== GROUPS ===================== */

func groupNameTaken(t *tables, m *groupModel.GroupModel) bool {
	return t.groups.exists(func(g *groupModel.GroupModel) bool {
		return g.ID != m.ID && g.ChurchID == m.ChurchID && g.Name == m.Name
	})
}

func (s *Store) CreateGroup(_ context.Context, m *groupModel.GroupModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		} else if t.groups.has(m.ID) {
			return conflict("group " + m.ID.String())
		}
		if groupNameTaken(t, m) {
			return conflict("group " + m.Name)
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.groups.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveGroup(_ context.Context, m *groupModel.GroupModel) error {
	return s.write(func(t *tables) error {
		if groupNameTaken(t, m) {
			return conflict("group " + m.Name)
		}
		m.UpdatedAt = now()
		t.groups.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteGroup(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.groups.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindGroup(_ context.Context, churchID, id uuid.UUID) (*groupModel.GroupModel, error) {
	var (
		m  groupModel.GroupModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.groups.get(id) })
	if !ok || m.ChurchID != churchID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) FindGroupByName(_ context.Context, churchID uuid.UUID, name string) (*groupModel.GroupModel, error) {
	var rows []groupModel.GroupModel
	s.read(func(t *tables) {
		rows = t.groups.filter(func(g *groupModel.GroupModel) bool {
			return g.ChurchID == churchID && g.Name == name
		})
	})
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (s *Store) ListGroups(_ context.Context, churchID uuid.UUID, p repository.Page) ([]groupModel.GroupModel, int64, error) {
	var rows []groupModel.GroupModel
	s.read(func(t *tables) {
		rows = t.groups.filter(func(g *groupModel.GroupModel) bool { return g.ChurchID == churchID })
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return window(rows, p), int64(len(rows)), nil
}

func (s *Store) ListGroupsHeadedBy(_ context.Context, userID uuid.UUID) ([]groupModel.GroupModel, error) {
	var rows []groupModel.GroupModel
	s.read(func(t *tables) {
		rows = t.groups.filter(func(g *groupModel.GroupModel) bool { return g.IsHeadedBy(userID) })
	})
	return rows, nil
}

/* ===================== CELLS ===================== */

func cellNameTaken(t *tables, m *cellModel.CellModel) bool {
	return t.cells.exists(func(c *cellModel.CellModel) bool {
		return c.ID != m.ID && c.ChurchID == m.ChurchID && c.Name == m.Name
	})
}

func (s *Store) CreateCell(_ context.Context, m *cellModel.CellModel) error {
	return s.write(func(t *tables) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		} else if t.cells.has(m.ID) {
			return conflict("cell " + m.ID.String())
		}
		if cellNameTaken(t, m) {
			return conflict("cell " + m.Name)
		}
		m.CreatedAt, m.UpdatedAt = now(), now()
		t.cells.put(m.ID, *m)
		return nil
	})
}

func (s *Store) SaveCell(_ context.Context, m *cellModel.CellModel) error {
	return s.write(func(t *tables) error {
		if cellNameTaken(t, m) {
			return conflict("cell " + m.Name)
		}
		m.UpdatedAt = now()
		t.cells.put(m.ID, *m)
		return nil
	})
}

func (s *Store) DeleteCell(_ context.Context, id uuid.UUID) error {
	return s.write(func(t *tables) error {
		if !t.cells.del(id) {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) FindCell(_ context.Context, churchID, id uuid.UUID) (*cellModel.CellModel, error) {
	var (
		m  cellModel.CellModel
		ok bool
	)
	s.read(func(t *tables) { m, ok = t.cells.get(id) })
	if !ok || m.ChurchID != churchID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *Store) FindCellByName(_ context.Context, churchID uuid.UUID, name string) (*cellModel.CellModel, error) {
	var rows []cellModel.CellModel
	s.read(func(t *tables) {
		rows = t.cells.filter(func(c *cellModel.CellModel) bool {
			return c.ChurchID == churchID && c.Name == name
		})
	})
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (s *Store) ListCells(_ context.Context, churchID uuid.UUID, f repository.CellFilter, p repository.Page) ([]cellModel.CellModel, int64, error) {
	var rows []cellModel.CellModel
	s.read(func(t *tables) {
		rows = t.cells.filter(func(c *cellModel.CellModel) bool {
			if c.ChurchID != churchID {
				return false
			}
			return f.GroupID == nil || c.InGroup(*f.GroupID)
		})
	})
	sortCellsByName(rows)
	return window(rows, p), int64(len(rows)), nil
}

func (s *Store) ListCellsLedBy(_ context.Context, userID uuid.UUID) ([]cellModel.CellModel, error) {
	var rows []cellModel.CellModel
	s.read(func(t *tables) {
		rows = t.cells.filter(func(c *cellModel.CellModel) bool { return c.LeaderID == userID })
	})
	return rows, nil
}

func (s *Store) ListCellsInGroup(_ context.Context, groupID uuid.UUID) ([]cellModel.CellModel, error) {
	var rows []cellModel.CellModel
	s.read(func(t *tables) {
		rows = t.cells.filter(func(c *cellModel.CellModel) bool { return c.InGroup(groupID) })
	})
	sortCellsByName(rows)
	return rows, nil
}

func sortCellsByName(rows []cellModel.CellModel) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
}
