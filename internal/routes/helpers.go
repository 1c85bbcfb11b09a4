package routes

import (
	"net/http"
	"strconv"

	pkghttpx "binger-server/pkg/httpx"
	pkgrequestctx "binger-server/pkg/requestctx"
)

// fingerprint extracts the caller identity set by the middleware. User-scoped
// handlers reject requests without one.
func fingerprint(w http.ResponseWriter, r *http.Request) (string, bool) {
	fp := pkgrequestctx.Fingerprint(r.Context())
	if fp == "" {
		pkghttpx.WriteError(w, r, pkghttpx.Unauthorized("missing X-Fingerprint header", nil))
		return "", false
	}
	return fp, true
}

// parseLimit reads the limit query param with a default of 20, capped at 100.
func parseLimit(r *http.Request) (int32, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "20"
	}
	lim, err := strconv.ParseInt(limitStr, 10, 32)
	if err != nil || lim <= 0 || lim > 100 {
		return 0, errInvalidLimit
	}
	return int32(lim), nil
}

var errInvalidLimit = httpParamError("invalid limit")

type httpParamError string

func (e httpParamError) Error() string { return string(e) }

// pathID parses an int64 path segment.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
