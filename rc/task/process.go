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

package task

import (
	"context"
	"os"
	"strconv"
	"strings"
)

func runProcessList(_ context.Context, e Env, _ Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	l, err := e.Sys.Processes()
	if err != nil {
		return Result{}, err
	}
	p, err := e.artifact("process_list", ".txt")
	if err != nil {
		return Result{}, err
	}
	var b strings.Builder
	for i := range l {
		b.WriteString(
			l[i].Name + "\t" + strconv.FormatUint(uint64(l[i].PID), 10) + "\t" +
				strconv.FormatUint(l[i].Memory, 10) + "\n",
		)
	}
	if err = os.WriteFile(p, []byte(b.String()), 0644); err != nil {
		return Result{}, err
	}
	return Result{Message: "found " + strconv.Itoa(len(l)) + " running processes", File: p}, nil
}
func runProcessStart(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	return each(r, "started", "processes", e.Sys.StartProcess)
}
func runProcessEnd(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	return each(r, "ended", "processes", e.Sys.KillProcess)
}

// each applies the supplied action to every name in the Request body and
// folds the outcomes into a single Result. Per-name failures are reported in
// the reply message, not raised as a Runner error.
func each(r Request, verb, what string, f func(string) error) (Result, error) {
	a := r.Args()
	if len(a) == 0 {
		return Result{}, ErrNoTargets
	}
	var (
		n int
		v []string
	)
	for i := range a {
		if err := f(a[i]); err != nil {
			v = append(v, a[i]+": "+err.Error())
			continue
		}
		n++
	}
	m := verb + " " + strconv.Itoa(n) + " of " + strconv.Itoa(len(a)) + " " + what
	if len(v) > 0 {
		m += " (" + strings.Join(v, ", ") + ")"
	}
	return Result{Message: m}, nil
}
