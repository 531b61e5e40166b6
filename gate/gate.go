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

// Package gate contains the access Store which decides if a mailbox address
// is currently allowed to issue commands.
//
// Grants are persisted as a JSON array of {"email", "grantedTime"} objects
// and expire twenty four hours after they are given. The file is re-read on
// every decision so the Store always reflects the latest persisted state, and
// any read or decode failure counts as "no grants", never as "everyone".
package gate

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/PurpleSec/escape"
)

// Validity is how long a single Grant authorizes its address for. A Grant is
// still valid at exactly Validity after it was given, and invalid after.
const Validity = time.Hour * 24

// Grant is a single persisted access record. Time is epoch seconds.
type Grant struct {
	Email string `json:"email"`
	Time  int64  `json:"grantedTime"`
}

// Store persists access Grants at a file path and answers authorization
// checks against them. Multiple Grants for the same address collapse to the
// most recent one, granting an already granted address only moves its
// timestamp forward.
//
// All operations take the internal lock, the control thread may grant while
// the poll thread checks.
type Store struct {
	now  func() time.Time
	path string
	lock sync.Mutex
}

// New creates a Store backed by the supplied file path. The file does not
// need to exist, a missing file is an empty Store.
func New(p string) *Store {
	return &Store{now: time.Now, path: p}
}
func (s *Store) load() map[string]int64 {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var g []Grant
	if err = json.Unmarshal(b, &g); err != nil {
		return nil
	}
	m := make(map[string]int64, len(g))
	for i := range g {
		if v, ok := m[g[i].Email]; !ok || g[i].Time > v {
			m[g[i].Email] = g[i].Time
		}
	}
	return m
}
func (s *Store) save(m map[string]int64) error {
	g := make([]Grant, 0, len(m))
	for k, v := range m {
		g = append(g, Grant{Email: k, Time: v})
	}
	sort.Slice(g, func(i, j int) bool { return g[i].Email < g[j].Email })
	b, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0644)
}

// Grant records an access Grant for the supplied address starting now. The
// full Grant list is rewritten.
func (s *Store) Grant(e string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	m := s.load()
	if m == nil {
		m = make(map[string]int64, 1)
	}
	m[e] = s.now().Unix()
	return s.save(m)
}

// Authorized returns true if the supplied address holds a Grant that has not
// expired. An unreadable or undecodable Grant file denies everyone.
func (s *Store) Authorized(e string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	v, ok := s.load()[e]
	if !ok {
		return false
	}
	return s.now().Sub(time.Unix(v, 0)) <= Validity
}

// Remaining returns the time left on the supplied address's Grant and true,
// or zero and false if the address holds no valid Grant.
func (s *Store) Remaining(e string) (time.Duration, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	v, ok := s.load()[e]
	if !ok {
		return 0, false
	}
	r := Validity - s.now().Sub(time.Unix(v, 0))
	if r < 0 {
		return 0, false
	}
	return r, true
}

// Grants returns the currently valid Grants, sorted by address.
func (s *Store) Grants() []Grant {
	s.lock.Lock()
	defer s.lock.Unlock()
	var (
		m = s.load()
		n = s.now()
		g = make([]Grant, 0, len(m))
	)
	for k, v := range m {
		if n.Sub(time.Unix(v, 0)) > Validity {
			continue
		}
		g = append(g, Grant{Email: k, Time: v})
	}
	sort.Slice(g, func(i, j int) bool { return g[i].Email < g[j].Email })
	return g
}

// Sweep rewrites the Grant file without the expired entries. Expired Grants
// are otherwise only skipped during checks, never removed.
func (s *Store) Sweep() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	m := s.load()
	if m == nil {
		return nil
	}
	n := s.now()
	for k, v := range m {
		if n.Sub(time.Unix(v, 0)) > Validity {
			delete(m, k)
		}
	}
	return s.save(m)
}

// JSON writes the currently valid Grants as a JSON array to the supplied
// Writer.
func (s *Store) JSON(w io.Writer) error {
	g := s.Grants()
	if _, err := w.Write([]byte{'['}); err != nil {
		return err
	}
	n := s.now()
	for i := range g {
		if i > 0 {
			if _, err := w.Write([]byte{','}); err != nil {
				return err
			}
		}
		r := Validity - n.Sub(time.Unix(g[i].Time, 0))
		_, err := w.Write([]byte(`{"email":` + escape.JSON(g[i].Email) + `,` +
			`"granted":"` + time.Unix(g[i].Time, 0).Format(time.RFC3339) + `",` +
			`"remaining":` + strconv.FormatInt(int64(r/time.Second), 10) + `}`,
		))
		if err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{']'})
	return err
}
