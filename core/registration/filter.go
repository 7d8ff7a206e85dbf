package registration

import (
	"strings"

	"github.com/alfurqan/campusreg/core"
)

// Filter narrows an already fetched list of registrations.
// Name and Course match case-insensitive substrings, Mobile a plain substring
// and Campus the exact campus ID. Empty fields match everything.
type Filter struct {
	Name   string `query:"name"`
	Mobile string `query:"mobile"`
	Course string `query:"course"`
	Campus string `query:"campus"`
}

func (f *Filter) Clean() {
	f.Name = core.CleanString(f.Name, true /* lower */)
	f.Mobile = core.CleanString(f.Mobile)
	f.Course = core.CleanString(f.Course, true /* lower */)
	f.Campus = core.CleanString(f.Campus)
}

func (f Filter) IsEmpty() bool {
	return f.Name == "" && f.Mobile == "" && f.Course == "" && f.Campus == ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f Filter) Match(r Registration) bool {
	if f.Name != "" && !containsFold(r.Name, f.Name) {
		return false
	}
	if f.Mobile != "" && !strings.Contains(r.Mobile, f.Mobile) {
		return false
	}
	if f.Course != "" && !containsFold(r.Course, f.Course) {
		return false
	}
	if f.Campus != "" && r.CampusID != f.Campus {
		return false
	}
	return true
}

// Apply returns the records matching every non-empty field, in their original order.
// The source slice is never modified.
func (f Filter) Apply(records []Registration) []Registration {
	f.Clean()
	if f.IsEmpty() {
		return records
	}
	out := make([]Registration, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
