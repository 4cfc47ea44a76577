package handler

import (
	"fmt"
	"net/http"
	"strings"
)

// GenerateETag formats a content checksum as a strong ETag.
func GenerateETag(checksum string) string {
	return fmt.Sprintf(`"%s"`, checksum)
}

// SetETagHeader sets the ETag header on the response.
func SetETagHeader(w http.ResponseWriter, checksum string) {
	w.Header().Set("ETag", GenerateETag(checksum))
}

// CheckIfNoneMatch reports whether the If-None-Match header already names
// the current output. A client that gets true back has the same directives
// from an earlier call.
func CheckIfNoneMatch(r *http.Request, checksum string) bool {
	header := r.Header.Get("If-None-Match")
	if header == "" {
		return false
	}

	current := GenerateETag(checksum)
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == current {
			return true
		}
	}
	return false
}
