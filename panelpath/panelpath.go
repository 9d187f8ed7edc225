// Package panelpath encodes server directory and file paths for use as
// the "directory" and "file" query parameters of the file endpoints.
package panelpath

import (
	"net/url"
	"strings"
)

// Encode prepares a bare directory: one trailing "/" is dropped and
// every "/" becomes "%2F", so Encode("a/b/") == Encode("a/b") == "a%2Fb".
func Encode(dir string) string {
	return escape(strings.TrimSuffix(dir, "/"))
}

// EncodeFile joins dir and file with exactly one "/" and encodes the
// result, so EncodeFile("a", "b") == EncodeFile("a/", "b") == "a%2Fb".
func EncodeFile(dir, file string) string {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return escape(dir + file)
}

// escape percent-encodes "/" along with anything else that would end
// the query value early (spaces, "&", "=", "#").
func escape(p string) string {
	return url.QueryEscape(p)
}
