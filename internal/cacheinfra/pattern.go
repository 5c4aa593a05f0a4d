package cacheinfra

import "strings"

const keySeparator = ":"

// MatchPattern reports whether key matches pattern. A "*" segment matches
// exactly one key segment; a trailing "*" matches one or more remaining
// segments. Patterns with no wildcard only match the identical key.
func MatchPattern(pattern, key string) bool {
	if pattern == key {
		return true
	}

	pseg := strings.Split(pattern, keySeparator)
	kseg := strings.Split(key, keySeparator)

	for i, p := range pseg {
		if p == "*" && i == len(pseg)-1 {
			// Trailing wildcard consumes the rest of the key.
			return len(kseg) > i
		}
		if i >= len(kseg) {
			return false
		}
		if p == "*" {
			continue
		}
		if p != kseg[i] {
			return false
		}
	}

	return len(kseg) == len(pseg)
}
