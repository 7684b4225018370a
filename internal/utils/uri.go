package utils

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// BaseURL returns scheme://host of the request. A configured public base URL
// wins over what the request says, e.g. behind a proxy.
func BaseURL(r *http.Request, publicBaseURL string) string {
	if base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"); base != "" {
		return base
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}

// ResourceURI is the absolute URI of one item of a collection.
func ResourceURI(r *http.Request, publicBaseURL, collectionPath string, id int64) string {
	return BaseURL(r, publicBaseURL) + strings.TrimRight(collectionPath, "/") + "/" + strconv.FormatInt(id, 10)
}

// WithQuery returns path with q encoded as its query string.
func WithQuery(base, path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return base + path + "?" + enc
	}
	return base + path
}
