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
	"time"
)

func runFileList(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	d := strings.TrimSpace(r.Content)
	if len(d) == 0 {
		d = "."
	}
	l, err := e.Sys.Files(d)
	if err != nil {
		return Result{}, err
	}
	p, err := e.artifact("file_list", ".txt")
	if err != nil {
		return Result{}, err
	}
	var b strings.Builder
	for i := range l {
		if l[i].Dir {
			b.WriteString("d ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(
			l[i].Name + "\t" + strconv.FormatInt(l[i].Size, 10) + "\t" +
				l[i].Modified.Format(time.RFC3339) + "\n",
		)
	}
	if err = os.WriteFile(p, []byte(b.String()), 0644); err != nil {
		return Result{}, err
	}
	return Result{Message: `found ` + strconv.Itoa(len(l)) + ` entries in "` + d + `"`, File: p}, nil
}
