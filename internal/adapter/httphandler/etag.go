package httphandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
)

func weakETag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
}

// etagMatches reports whether an If-None-Match header value lists etag.
// Comparison is weak, so W/ prefixes are ignored on both sides.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// writeWithETag writes body with a weak ETag, or 304 when the client
// already holds it.
func writeWithETag(
	w http.ResponseWriter, r *http.Request, contentType string, body []byte,
) {
	const op = "httphandler.writeWithETag"

	etag := weakETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
