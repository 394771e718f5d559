package httputil

import "net/http"

// JSONHeaders returns common headers for JSON REST APIs.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, br")
	return h
}

// BearerJSONHeaders returns JSON headers with a Bearer token attached.
func BearerJSONHeaders(token string) http.Header {
	h := JSONHeaders()
	h.Set("Authorization", "Bearer "+token)
	return h
}
