package memory

import (
	"sort"

	"github.com/google/uuid"

	"churchbook_backend/internals/repository"
)

type row[T any] struct {
	seq int64
	v   T
}

// table keeps insertion order so listings are stable without timestamps.
type table[T any] struct {
	rows map[uuid.UUID]row[T]
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]row[T])}
}

func (t *table[T]) put(id uuid.UUID, v T) {
	r, ok := t.rows[id]
	if !ok {
		t.seq++
		r.seq = t.seq
	}
	r.v = v
	t.rows[id] = r
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	r, ok := t.rows[id]
	return r.v, ok
}

func (t *table[T]) has(id uuid.UUID) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) del(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// filter returns matching rows in insertion order.
func (t *table[T]) filter(keep func(*T) bool) []T {
	rs := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(&r.v) {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].seq < rs[j].seq })
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.v)
	}
	return out
}

func (t *table[T]) exists(match func(*T) bool) bool {
	for _, r := range t.rows {
		if match(&r.v) {
			return true
		}
	}
	return false
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[uuid.UUID]row[T], len(t.rows)), seq: t.seq}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

func window[T any](rows []T, p repository.Page) []T {
	p = p.Normalize()
	if p.Offset >= len(rows) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[p.Offset:end]
}
