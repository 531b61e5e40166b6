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

	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/util/xerr"
)

const recentCount = 10

// ErrNoMailbox is returned by the readRecentEmails Runner when the attached
// Transport cannot list recent inbox contents.
var ErrNoMailbox = xerr.New("transport cannot list recent messages")

func runRecentEmails(x context.Context, e Env, _ Request) (Result, error) {
	v, ok := e.Mail.(mail.Reader)
	if !ok {
		return Result{}, ErrNoMailbox
	}
	l, err := v.Recent(x, recentCount)
	if err != nil {
		return Result{}, err
	}
	p, err := e.artifact("recent_emails", ".txt")
	if err != nil {
		return Result{}, err
	}
	var b strings.Builder
	for i := range l {
		b.WriteString(
			"From: " + l[i].From + "\nDate: " + l[i].Received.Format(time.RFC1123Z) +
				"\nSubject: " + l[i].Subject + "\n\n" + l[i].Body + "\n\n----\n",
		)
	}
	if err = os.WriteFile(p, []byte(b.String()), 0644); err != nil {
		return Result{}, err
	}
	return Result{Message: "read " + strconv.Itoa(len(l)) + " recent messages", File: p}, nil
}
