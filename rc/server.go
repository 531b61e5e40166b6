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

package rc

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PurpleSec/logx"
	"github.com/swtch9/mrc/gate"
	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/rc/cout"
	"github.com/swtch9/mrc/rc/task"
	"github.com/swtch9/mrc/util/xerr"
)

var (
	// ErrNoTransport is returned by Start when the Server has no mailbox
	// Transport.
	ErrNoTransport = xerr.New("invalid or missing transport")
	// ErrNoRequest is returned by Deny when the supplied address has no
	// pending access request.
	ErrNoRequest = xerr.New("no pending request for address")
)

// Server is the manager for the poll, gate and dispatch cycle. One fetch,
// parse, dispatch and reply pass runs to completion per tick, there is never
// more than one outstanding poll.
//
// Sys, Interval, Dir and Update may be set before Start and must not be
// changed after.
type Server struct {
	Log    *cout.Log
	Sys    task.System
	Update func(State)

	t mail.Transport
	g *gate.Store

	ctx    context.Context
	cancel context.CancelFunc
	ch     chan struct{}

	requests map[string]time.Time
	last     time.Time
	state    State
	lock     sync.RWMutex

	Dir      string
	Interval time.Duration
}

// AccessRequest is a pending, not yet approved or denied, access request
// held for the control surface.
type AccessRequest struct {
	When  time.Time
	Email string
}

// New creates a Server that polls the supplied Transport and gates senders
// through the supplied Store. If the supplied Log is nil, the 'logx.Nop' log
// will be used. The supplied Context is the base context for cancelation.
func New(x context.Context, t mail.Transport, g *gate.Store, l logx.Log) *Server {
	if l == nil {
		l = logx.NOP
	}
	s := &Server{
		t: t, g: g,
		Log: cout.New(l), ch: make(chan struct{}),
		Interval: DefaultInterval, requests: make(map[string]time.Time),
	}
	s.ctx, s.cancel = context.WithCancel(x)
	return s
}

// Gate returns the access Store this Server gates senders through.
func (s *Server) Gate() *gate.Store {
	return s.g
}

// State returns a copy of the current observable State.
func (s *Server) State() State {
	s.lock.RLock()
	v := s.state
	s.lock.RUnlock()
	return v
}

// Start validates the Server and launches the polling thread. It returns
// immediately, use Wait to block until shutdown.
func (s *Server) Start() error {
	if s.t == nil {
		return ErrNoTransport
	}
	if s.Interval <= 0 {
		s.Interval = DefaultInterval
	}
	s.Log.Info(`[poll] Server started as "%s", polling every %s.`, s.t.Address(), s.Interval.String())
	go s.listen()
	return nil
}

// Wait will block until the Server is closed and shutdown.
func (s *Server) Wait() {
	<-s.ch
}

// Close stops the polling thread. A handler already running finishes its
// cycle first, cancelation only takes effect between cycles.
func (s *Server) Close() error {
	s.cancel()
	<-s.ch
	return nil
}
func (s *Server) listen() {
	s.Log.Debug("[poll] Server processing thread started!")
	t := time.NewTicker(s.Interval)
	for {
		select {
		case <-s.ctx.Done():
			t.Stop()
			s.Log.Debug("[poll] Stopping Server...")
			close(s.ch)
			return
		case <-t.C:
			s.tick(s.ctx)
		}
	}
}

// tick runs one full fetch, parse, dispatch and reply pass. A fetch failure
// triggers exactly one auth refresh and one retry, a second failure counts as
// an empty cycle, the loop never dies to a transport error.
func (s *Server) tick(x context.Context) {
	m, err := s.t.FetchSince(x, s.last, Marker)
	if err != nil {
		s.Log.Warning("[poll] Fetch failed (%s), refreshing auth and retrying!", err.Error())
		if err = s.t.RefreshAuth(x); err != nil {
			s.Log.Error("[poll] Auth refresh failed: %s!", err.Error())
			m = nil
		} else if m, err = s.t.FetchSince(x, s.last, Marker); err != nil {
			s.Log.Error("[poll] Fetch retry failed: %s!", err.Error())
			m = nil
		}
	}
	var n int
	for i := range m {
		c, err := Parse(m[i])
		if err != nil {
			// Not silently dropped, malformed subjects are at least logged.
			s.Log.Debug(`[poll] Skipping message %q from "%s": %s.`, m[i].Subject, m[i].From, err.Error())
			continue
		}
		// Checkpoint only moves forward, a transport re-delivering an old
		// message cannot reset it.
		if c.Received.After(s.last) {
			s.last = c.Received
		}
		s.handle(x, c)
		n++
	}
	if n == 0 {
		s.setState(State{})
	}
}
func (s *Server) setState(v State) {
	s.lock.Lock()
	e := s.state.Empty() && v.Empty()
	s.state = v
	s.lock.Unlock()
	if e || s.Update == nil {
		return
	}
	s.Update(v)
}

// Requests returns the pending access requests, oldest first.
func (s *Server) Requests() []AccessRequest {
	s.lock.RLock()
	r := make([]AccessRequest, 0, len(s.requests))
	for k, v := range s.requests {
		r = append(r, AccessRequest{Email: k, When: v})
	}
	s.lock.RUnlock()
	sort.Slice(r, func(i, j int) bool { return r[i].When.Before(r[j].When) })
	return r
}

// Approve grants access to the supplied address, removes its pending request
// (if any) and notifies the address by mail. The notification is best effort,
// only a Grant persistence failure is returned.
func (s *Server) Approve(x context.Context, e string) error {
	s.lock.Lock()
	delete(s.requests, e)
	s.lock.Unlock()
	if err := s.g.Grant(e); err != nil {
		return err
	}
	s.Log.Info(`[gate] Access granted to "%s".`, e)
	if err := s.t.Send(x, e, "Re: requestAccess", "Access granted for the next "+gate.Validity.String()+"."); err != nil {
		s.Log.Error(`[gate] Grant notice to "%s" failed: %s!`, e, err.Error())
	}
	return nil
}

// Deny removes the pending access request of the supplied address and
// notifies it by mail, best effort. No grant is written or removed.
func (s *Server) Deny(x context.Context, e string) error {
	s.lock.Lock()
	_, ok := s.requests[e]
	delete(s.requests, e)
	s.lock.Unlock()
	if !ok {
		return ErrNoRequest
	}
	s.Log.Info(`[gate] Access denied to "%s".`, e)
	if err := s.t.Send(x, e, "Re: requestAccess", "Access request denied."); err != nil {
		s.Log.Error(`[gate] Deny notice to "%s" failed: %s!`, e, err.Error())
	}
	return nil
}
