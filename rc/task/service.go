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

func runServiceList(_ context.Context, e Env, _ Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	l, err := e.Sys.Services()
	if err != nil {
		return Result{}, err
	}
	p, err := e.artifact("service_list", ".txt")
	if err != nil {
		return Result{}, err
	}
	var b strings.Builder
	for i := range l {
		b.WriteString(l[i].Name + "\t" + l[i].Display + "\t" + l[i].Status + "\n")
	}
	if err = os.WriteFile(p, []byte(b.String()), 0644); err != nil {
		return Result{}, err
	}
	return Result{Message: "found " + strconv.Itoa(len(l)) + " services", File: p}, nil
}
func runServiceStart(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	return each(r, "started", "services", e.Sys.StartService)
}
func runServiceEnd(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	return each(r, "stopped", "services", e.Sys.StopService)
}
