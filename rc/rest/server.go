// Copyright (C) 2020 - 2022 iDigitalFlame
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//

// Package rest is the local control surface of the server, the out-of-band
// path a human uses to approve or deny access requests and watch the current
// command state. It never executes commands itself.
package rest

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PurpleSec/escape"
	"github.com/PurpleSec/routex"
	"github.com/swtch9/mrc/rc"
)

const (
	prefix = `^/api/v1`

	timeout = time.Second * 10
)

// Server is the struct that handles the control HTTP interface over a rc
// Server instance.
type Server struct {
	Auth string
	http.Server

	ctx context.Context
	s   *rc.Server

	cancel context.CancelFunc
	mux    *routex.Mux

	Timeout time.Duration
}

// New creates a control Server instance wrapping the supplied rc Server.
//
// The provided key can be used to authenticate to the control service with
// the 'X-RestAuth' HTTP header containing the supplied key. If empty,
// authentication is disabled.
func New(s *rc.Server, key string) *Server {
	return NewContext(context.Background(), s, key)
}

// NewContext creates a new control Server instance wrapping the supplied rc
// Server. This function allows specifying a Context to aid in cancelation.
func NewContext(x context.Context, c *rc.Server, key string) *Server {
	s := &Server{s: c, Auth: key, Timeout: timeout}
	s.ctx, s.cancel = context.WithCancel(x)
	s.BaseContext = s.context
	s.mux = routex.NewContext(x)
	s.mux.Middleware(encoding)
	s.mux.Middleware(s.auth)
	s.mux.Error = routex.ErrorFunc(errors)
	configureRoutes(s, s.mux)
	s.Handler = s.mux
	return s
}
func configureRoutes(s *Server, m *routex.Mux) {
	m.Must(
		prefix+`/state$`, routex.Func(s.httpStateGet),
		http.MethodGet,
	)
	m.Must(
		prefix+`/access$`, routex.Func(s.httpAccessList),
		http.MethodGet,
	)
	m.Must(
		prefix+`/request$`, routex.Func(s.httpRequestList),
		http.MethodGet,
	)
	m.Must(
		prefix+`/request/(?P<email>[a-zA-Z0-9@\-._+]+)$`, routex.Func(s.httpRequestSet),
		http.MethodPut, http.MethodDelete,
	)
}

// Listen will bind to the specified address and begin serving requests.
// This function will return when the server is closed.
func (s *Server) Listen(addr string) error {
	return s.ListenTLS(addr, "", "")
}

// ListenTLS will bind to the specified address and use the provided
// certificate and key file paths to listen using a secure TLS tunnel. This
// function will return when the server is closed.
func (s *Server) ListenTLS(addr, cert, key string) error {
	if s.Timeout == 0 {
		s.Timeout = timeout
	}
	s.Addr = addr
	s.ReadTimeout, s.IdleTimeout = s.Timeout, s.Timeout
	s.WriteTimeout, s.ReadHeaderTimeout = s.Timeout, s.Timeout
	if len(cert) == 0 || len(key) == 0 {
		return s.ListenAndServe()
	}
	s.TLSConfig = &tls.Config{
		NextProtos: []string{"h2", "http/1.1"},
		MinVersion: tls.VersionTLS12,
	}
	return s.ListenAndServeTLS(cert, key)
}

// Stop releases the control Server resources and stops serving.
func (s *Server) Stop() error {
	s.cancel()
	return s.Close()
}
func (s *Server) context(_ net.Listener) context.Context {
	return s.ctx
}
func errors(c int, e string, w http.ResponseWriter, _ *routex.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(c)
	w.Write([]byte(`{"source": "mrc_rest", "code": ` + strconv.Itoa(c) + `, "error": `))
	if len(e) > 0 {
		w.Write([]byte(escape.JSON(e)))
	} else {
		w.Write([]byte(`""`))
	}
	w.Write([]byte(`}`))
}
func encoding(_ context.Context, w http.ResponseWriter, _ *routex.Request) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return true
}
func (s *Server) auth(_ context.Context, w http.ResponseWriter, r *routex.Request) bool {
	if len(s.Auth) == 0 {
		return true
	}
	if !strings.EqualFold(r.Header.Get("X-RestAuth"), s.Auth) {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}
