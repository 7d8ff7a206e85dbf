package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Apply(t *testing.T) {
	records := []Registration{
		{ID: "1", Name: "Ali Khan", Mobile: "03001112233", Course: "Web Development", CampusID: "c1"},
		{ID: "2", Name: "Sara Ahmed", Mobile: "03214445566", Course: "Graphic Design", CampusID: "c2"},
		{ID: "3", Name: "ALINA Malik", Mobile: "03331112299", Course: "web design", CampusID: "c1"},
		{ID: "4", Name: "Bilal", Mobile: "03007778899", Course: "Data Science", CampusID: "c3"},
	}
	ids := func(regs []Registration) []string {
		out := make([]string, 0, len(regs))
		for _, r := range regs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "empty", filter: Filter{}, want: []string{"1", "2", "3", "4"}},
		{name: "blank fields", filter: Filter{Name: "  ", Campus: " "}, want: []string{"1", "2", "3", "4"}},
		{name: "name case-insensitive", filter: Filter{Name: "ali"}, want: []string{"1", "3"}},
		{name: "name upper", filter: Filter{Name: "AHMED"}, want: []string{"2"}},
		{name: "mobile substring", filter: Filter{Mobile: "111"}, want: []string{"1", "3"}},
		{name: "course case-insensitive", filter: Filter{Course: "WEB"}, want: []string{"1", "3"}},
		{name: "campus exact", filter: Filter{Campus: "c1"}, want: []string{"1", "3"}},
		{name: "campus no partial match", filter: Filter{Campus: "c"}, want: []string{}},
		{name: "combined", filter: Filter{Name: "ali", Course: "design", Campus: "c1"}, want: []string{"3"}},
		{name: "no match", filter: Filter{Name: "zed"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			assert.Equal(t, tt.want, ids(got))

			// idempotent
			assert.Equal(t, ids(got), ids(tt.filter.Apply(got)))
		})
	}
}

func TestFilter_Apply_KeepsSource(t *testing.T) {
	records := []Registration{
		{ID: "1", Name: "Ali"},
		{ID: "2", Name: "Sara"},
	}
	out := Filter{Name: "sara"}.Apply(records)
	assert.Len(t, out, 1)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "2", records[1].ID)

	same := Filter{}.Apply(records)
	assert.Equal(t, records, same)
}
