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

package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/PurpleSec/escape"
	"github.com/PurpleSec/routex"
	"github.com/swtch9/mrc/device"
	"github.com/swtch9/mrc/rc"
)

func (s *Server) httpStateGet(_ context.Context, w http.ResponseWriter, _ *routex.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"device": `))
	device.Local.JSON(w)
	w.Write([]byte(`, "state": `))
	v := s.s.State()
	v.JSON(w)
	w.Write([]byte(`}`))
}
func (s *Server) httpAccessList(_ context.Context, w http.ResponseWriter, _ *routex.Request) {
	g := s.s.Gate()
	if g == nil {
		errors(http.StatusInternalServerError, "no access store", w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	g.JSON(w)
}
func (s *Server) httpRequestList(_ context.Context, w http.ResponseWriter, _ *routex.Request) {
	v := s.s.Requests()
	w.WriteHeader(http.StatusOK)
	if len(v) == 0 {
		w.Write([]byte(`[]`))
		return
	}
	w.Write([]byte("["))
	for i := range v {
		if i > 0 {
			w.Write([]byte(","))
		}
		w.Write([]byte(`{"email": ` + escape.JSON(v[i].Email) + `, "when": ` + strconv.FormatInt(v[i].When.Unix(), 10) + `}`))
	}
	w.Write([]byte("]"))
}
func (s *Server) httpRequestSet(x context.Context, w http.ResponseWriter, r *routex.Request) {
	var (
		e   = r.Values.StringDefault("email", "")
		err error
	)
	if len(e) == 0 {
		errors(http.StatusBadRequest, "empty email value", w, r)
		return
	}
	if r.Method == http.MethodDelete {
		err = s.s.Deny(x, e)
	} else {
		err = s.s.Approve(x, e)
	}
	if err == rc.ErrNoRequest {
		errors(http.StatusNotFound, "", w, r)
		return
	}
	if err != nil {
		errors(http.StatusInternalServerError, err.Error(), w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}
