package web

import (
	"strings"

	"github.com/nao1215/fundboard/internal/model"
)

// etagFingerprintLen is how much of the dataset fingerprint goes into an ETag.
const etagFingerprintLen = 16

// makeETag derives a strong ETag from the dataset fingerprint, the state
// and the representation.
func makeETag(fingerprint string, q model.Query, representation string) string {
	if len(fingerprint) > etagFingerprintLen {
		fingerprint = fingerprint[:etagFingerprintLen]
	}
	funded := "h"
	if q.IncludeFunded {
		funded = "s"
	}
	return `"` + strings.Join([]string{fingerprint, string(q.Key), string(q.Direction), funded, representation}, "-") + `"`
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
