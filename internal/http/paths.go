package http

import (
	"strconv"
	"strings"
)

// pathSegments splits a URL path into its non-empty segments.
// "/borrowed/user/42" -> ["borrowed", "user", "42"].
func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func parseID(segment string) (int64, bool) {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
