package redos

// Config holds the ReDoS analyzer's tunables: patterns to skip outright
// and the large-bounded-repeat threshold (spec §4.6).
type Config struct {
	RedosIgnoredPatterns []string
	LargeBoundedRepeat   int
}

// DefaultConfig mirrors spec §4.6's stated threshold (n > 1000).
func DefaultConfig() Config {
	return Config{LargeBoundedRepeat: 1000}
}

func (c Config) ignored(source string) bool {
	for _, p := range c.RedosIgnoredPatterns {
		if p == source {
			return true
		}
	}
	return false
}
