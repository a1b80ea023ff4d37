//go:build !prod

package database

// GetDefaultDBPath returns the database path for development mode.
// The file sits next to the working directory so it is easy to inspect.
func GetDefaultDBPath() string {
	return "storynarrator.db"
}

func IsDevelopment() bool {
	return true
}
