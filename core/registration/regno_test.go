package registration

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var regNoPattern = regexp.MustCompile(`^[A-Z0-9 ]+-\d{8}-\d{3}$`)

func TestNewRegistrationNo(t *testing.T) {
	lahore := time.FixedZone("PKT", 5*60*60)

	tests := []struct {
		name   string
		campus string
		now    time.Time
		rand   int
		want   string
	}{
		{name: "lower bound", campus: "Main", now: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), rand: 0, want: "MAIN-20240309-100"},
		{name: "upper bound", campus: "Main", now: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), rand: 899, want: "MAIN-20240309-999"},
		{name: "spaces kept", campus: "City Campus 2", now: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), rand: 23, want: "CITY CAMPUS 2-20231231-123"},
		{name: "date is UTC", campus: "north", now: time.Date(2024, 1, 1, 2, 0, 0, 0, lahore), rand: 1, want: "NORTH-20231231-101"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			randIntn = func(n int) int {
				assert.Equal(t, 900, n)
				return tt.rand
			}
			defer func() { randIntn = defaultRandIntn }()

			got := NewRegistrationNo(tt.campus, tt.now)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, regNoPattern, got)
		})
	}
}

func TestNewRegistrationNo_Random(t *testing.T) {
	now := time.Now()
	for i := 0; i < 500; i++ {
		got := NewRegistrationNo("Main", now)
		if !regNoPattern.MatchString(got) {
			t.Fatalf("NewRegistrationNo() = %q, does not match %s", got, regNoPattern)
		}
		assert.Contains(t, got, "MAIN-"+now.UTC().Format("20060102")+"-")
	}
}
