package main

import (
	"bytes"
	"io"
	"net"
)

// rawErrorHeaders is the header block net/http uses for the error responses
// it writes straight to the connection when a request cannot be read
// (400, 431, 501, 505). Those responses never reach a handler.
var rawErrorHeaders = []byte("\r\nContent-Type: text/plain; charset=utf-8\r\nConnection: close\r\n\r\n")

// noCacheListener hands out connections that add the no-cache headers to
// those raw error responses.
type noCacheListener struct {
	net.Listener
}

func (l noCacheListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &noCacheConn{Conn: conn}, nil
}

type noCacheConn struct {
	net.Conn
}

func (c *noCacheConn) Write(b []byte) (int, error) {
	patched, ok := injectRawNoCacheHeaders(b)
	if !ok {
		return c.Conn.Write(b)
	}
	if _, err := c.Conn.Write(patched); err != nil {
		return 0, err
	}
	return len(b), nil
}

// ReadFrom keeps the sendfile path of the underlying connection. Only
// response bodies are copied this way.
func (c *noCacheConn) ReadFrom(r io.Reader) (int64, error) {
	if rf, ok := c.Conn.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}
	return io.Copy(c.Conn, r)
}

// CloseWrite lets the server half-close after an error response.
func (c *noCacheConn) CloseWrite() error {
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}

// injectRawNoCacheHeaders inserts the no-cache headers after the status line
// of a complete raw error response. Anything else is left untouched.
func injectRawNoCacheHeaders(b []byte) ([]byte, bool) {
	if !bytes.HasPrefix(b, []byte("HTTP/1.")) {
		return nil, false
	}

	end := bytes.Index(b, []byte("\r\n\r\n"))
	if end < 0 || !bytes.HasSuffix(b[:end+4], rawErrorHeaders) {
		return nil, false
	}
	if bytes.Contains(b[:end], []byte("\r\nCache-Control:")) {
		return nil, false
	}

	status := bytes.Index(b, []byte("\r\n")) + 2
	patched := make([]byte, 0, len(b)+len(noCacheHeaderLines()))
	patched = append(patched, b[:status]...)
	patched = append(patched, noCacheHeaderLines()...)
	patched = append(patched, b[status:]...)
	return patched, true
}
