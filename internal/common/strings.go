// internal/common/strings.go
package common

import "strings"

// UniqueTrimmed trims whitespace, drops blanks and de-duplicates strings,
// preserving first-seen order. The result is never nil.
func UniqueTrimmed(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		u := strings.TrimSpace(s)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
