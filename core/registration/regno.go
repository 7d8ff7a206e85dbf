package registration

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const regNoDateLayout = "20060102"

var (
	NowFunc  = time.Now // mockable
	randIntn = defaultRandIntn

	defaultRandIntn = rand.Intn
)

// NewRegistrationNo derives "{CAMPUS NAME}-{YYYYMMDD}-{NNN}" from the campus name and now (as UTC).
// NNN is uniform in [100, 999]; collisions are not detected.
func NewRegistrationNo(campusName string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", strings.ToUpper(campusName), now.UTC().Format(regNoDateLayout), 100+randIntn(900))
}
