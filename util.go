package main

import (
	"net"
	"net/http"
)

// ListenURL returns the URL a browser should use to reach a listener bound
// to addr. Loopback and wildcard hosts are shown as localhost.
func ListenURL(addr net.Addr) string {
	if addr == nil {
		return ""
	}

	if addr.Network() == "unix" {
		return "unix:" + addr.String()
	}

	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}

	ip := net.ParseIP(host)
	if host == "" || (ip != nil && (ip.IsLoopback() || ip.IsUnspecified())) {
		host = "localhost"
	}

	if port == "80" {
		return "http://" + host
	}
	return "http://" + net.JoinHostPort(host, port)
}

// RemoteHost returns the host part of the request's RemoteAddr,
// or "-" when it is unknown (e.g. over a unix socket).
func RemoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		if r.RemoteAddr != "" && r.RemoteAddr != "@" {
			return r.RemoteAddr
		}
		return "-"
	}
	return host
}
