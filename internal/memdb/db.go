// Package memdb keeps the three record tables in process memory. It backs
// the service when database.driver is "memory" and is used by unit tests.
package memdb

import (
	"sort"
	"strings"
	"sync"

	"academic-service/internal/classroom"
	"academic-service/internal/student"
	"academic-service/internal/subject"

	"github.com/google/uuid"
)

type (
	DB struct {
		students *table[student.Student]
		subjects *table[subject.Subject]
		classes  *table[classroom.ClassRoom]
	}

	table[T any] struct {
		mutex sync.RWMutex
		rows  map[string]*T
		code  func(*T) string
		// duplicate is returned when a row's code is already stored.
		duplicate error
	}
)

func Open() *DB {
	return &DB{
		students: newTable(func(s *student.Student) string { return s.NIM }, student.ErrDuplicateNIM),
		subjects: newTable(func(s *subject.Subject) string { return s.Code }, subject.ErrDuplicateCode),
		classes:  newTable(func(c *classroom.ClassRoom) string { return c.Code }, classroom.ErrDuplicateCode),
	}
}

func newTable[T any](code func(*T) string, duplicate error) *table[T] {
	return &table[T]{rows: make(map[string]*T), code: code, duplicate: duplicate}
}

// query returns copies ordered by code, like the SQL repositories.
func (t *table[T]) query() []T {
	res := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		res = append(res, *row)
	}
	sort.Slice(res, func(i, j int) bool {
		return t.code(&res[i]) < t.code(&res[j])
	})
	return res
}

// codeTaken must be called with the mutex held.
func (t *table[T]) codeTaken(code, exceptID string) bool {
	if code == "" {
		return false
	}
	for id, row := range t.rows {
		if id != exceptID && t.code(row) == code {
			return true
		}
	}
	return false
}

func (t *table[T]) insert(row T, setID func(*T, string)) (T, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.codeTaken(t.code(&row), "") {
		return row, t.duplicate
	}
	id := uuid.NewString()
	setID(&row, id)
	t.rows[id] = &row
	return row, nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *row, true
}

func (t *table[T]) replace(id string, row T) (bool, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false, nil
	}
	if t.codeTaken(t.code(&row), id) {
		return true, t.duplicate
	}
	t.rows[id] = &row
	return true, nil
}

func (t *table[T]) remove(id string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) count() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.rows)
}

func (t *table[T]) codes(prefix string) []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	var res []string
	for _, row := range t.rows {
		if c := t.code(row); strings.HasPrefix(c, prefix) {
			res = append(res, c)
		}
	}
	return res
}
