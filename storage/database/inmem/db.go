// Package inmemdb keeps every collection in process memory.
// It backs the tests and the DB-less dev mode.
package inmemdb

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alfurqan/campusreg/core/campus"
	"github.com/alfurqan/campusreg/core/campusadmin"
	"github.com/alfurqan/campusreg/core/course"
	"github.com/alfurqan/campusreg/core/registration"
)

type (
	// table keeps rows in insertion order.
	table[T any] struct {
		ids  []string
		rows map[string]*T
	}

	DB struct {
		mu            sync.RWMutex
		campuses      table[campus.Campus]
		courses       table[course.Course]
		campusAdmins  table[campusadmin.CampusAdmin]
		registrations table[registration.Registration]
	}
)

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]*T)}
}

func Open() *DB {
	return &DB{
		campuses:      newTable[campus.Campus](),
		courses:       newTable[course.Course](),
		campusAdmins:  newTable[campusadmin.CampusAdmin](),
		registrations: newTable[registration.Registration](),
	}
}

func (t *table[T]) insert(id string, row T) {
	t.ids = append(t.ids, id)
	t.rows[id] = &row
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *row, true
}

func (t *table[T]) delete(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, rid := range t.ids {
		if rid == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

// all returns copies of the rows, oldest first.
func (t *table[T]) all() []T {
	rows := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		rows = append(rows, *t.rows[id])
	}
	return rows
}

func newID() string {
	return uuid.New().String()
}

func now() time.Time {
	return time.Now().UTC()
}
