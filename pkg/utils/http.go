// Package utils provides common utility functions.
package utils

import "net/url"

// UserAgent identifies outbound requests made by this module.
const UserAgent = "carprice/1.0"

// DefaultHeaders returns the headers sent with every outbound request,
// merged with custom ones. Custom values win.
func DefaultHeaders(custom map[string]string) map[string]string {
	headers := map[string]string{
		"User-Agent": UserAgent,
		"Accept":     "application/json",
	}

	for key, value := range custom {
		headers[key] = value
	}

	return headers
}

// IsValidURL reports whether raw is an absolute http(s) URL with a host.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
