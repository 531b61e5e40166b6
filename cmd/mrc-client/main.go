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

// The mrc-client binary is the operator side of the mail channel. It logs in
// to the operator mailbox, composes "Command::" subjects from a menu and
// reads back the replies the server sends.
package main

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/rc"
	"github.com/swtch9/mrc/rc/task"
)

func main() {
	if len(os.Args) != 3 {
		os.Stderr.WriteString("usage: " + os.Args[0] + " <config> <target-address>\n")
		os.Exit(2)
	}
	c, err := rc.LoadConfig(os.Args[1])
	if err != nil {
		os.Stderr.WriteString("Error reading config " + os.Args[1] + ": " + err.Error() + "!\n")
		os.Exit(1)
	}
	t, err := mail.NewIMAP(c.Mail)
	if err != nil {
		os.Stderr.WriteString("Error setting up mailbox: " + err.Error() + "!\n")
		os.Exit(1)
	}
	if err = menu(context.Background(), t, os.Args[2]); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "!\n")
		t.Close()
		os.Exit(1)
	}
	t.Close()
}
func tags() []string {
	v := make([]string, 0, len(task.Tags))
	for n := range task.Tags {
		v = append(v, n)
	}
	sort.Strings(v)
	return v
}
func menu(x context.Context, t *mail.IMAP, target string) error {
	var (
		v = tags()
		r = bufio.NewScanner(os.Stdin)
		o = bufio.NewWriter(os.Stdout)
	)
	for {
		o.WriteString("\nCommands:\n")
		for i := range v {
			o.WriteString("  " + v[i] + "\n")
		}
		o.WriteString("  replies\n  quit\n> ")
		o.Flush()
		if !r.Scan() {
			return r.Err()
		}
		n := strings.TrimSpace(r.Text())
		switch {
		case len(n) == 0:
			continue
		case n == "quit" || n == "exit":
			return nil
		case n == "replies":
			if err := replies(x, t, o); err != nil {
				return err
			}
			continue
		}
		if _, ok := task.Tags[n]; !ok {
			o.WriteString("Unknown command " + strconv.Quote(n) + "\n")
			o.Flush()
			continue
		}
		o.WriteString("Arguments (empty for none)> ")
		o.Flush()
		if !r.Scan() {
			return r.Err()
		}
		if err := t.Send(x, target, rc.Marker+n, strings.TrimSpace(r.Text())); err != nil {
			return err
		}
		o.WriteString("Sent " + rc.Marker + n + " to " + target + "\n")
		o.Flush()
	}
}
func replies(x context.Context, t *mail.IMAP, o *bufio.Writer) error {
	m, err := t.Recent(x, 10)
	if err != nil {
		return err
	}
	if len(m) == 0 {
		o.WriteString("No messages.\n")
		return o.Flush()
	}
	for i := range m {
		o.WriteString(
			"\n[" + m[i].Received.Format("2006-01-02 15:04:05") + "] " + m[i].From + ": " +
				m[i].Subject + "\n" + strings.TrimSpace(m[i].Body) + "\n",
		)
	}
	return o.Flush()
}
