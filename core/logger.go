package core

// Logger is any service that can log & report events.
// args may carry an error, a map[string]interface{} of extras and the acting identity.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Identity is the acting user attached to reported events.
type Identity struct {
	ID    string
	Email string
	Role  string
}
