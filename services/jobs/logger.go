package jobs

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/alfurqan/campusreg/core"
)

// cronLogger sends the scheduler events, including recovered job panics, to core.Logger.
type cronLogger struct {
	logger core.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(formatCronMessage(msg, keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(formatCronMessage(msg, keysAndValues), err)
}

func formatCronMessage(msg string, keysAndValues []interface{}) string {
	var b strings.Builder
	b.WriteString("cron: ")
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, ", %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}
