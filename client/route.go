package client

import "strings"

// NormalizeHost returns host ending in exactly one "/". A host that
// already ends in "/" is returned unchanged.
func NormalizeHost(host string) string {
	if strings.HasSuffix(host, "/") {
		return host
	}

	return host + "/"
}

// Join concatenates a route onto host with exactly one "/" at the join
// point. Routes are relative; a leading "/" is dropped rather than doubled.
func Join(host, route string) string {
	return NormalizeHost(host) + strings.TrimLeft(route, "/")
}
