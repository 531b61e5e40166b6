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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PurpleSec/logx"
	"github.com/swtch9/mrc/device"
	"github.com/swtch9/mrc/gate"
	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/rc"
	"github.com/swtch9/mrc/rc/rest"
)

func main() {
	var (
		f = flag.String("c", "mrc.json", "Path to the configuration file.")
		d = flag.Bool("d", false, "Log debug output to the console.")
	)
	flag.Parse()
	c, err := rc.LoadConfig(*f)
	if err != nil {
		os.Stderr.WriteString("Error reading config " + *f + ": " + err.Error() + "!\n")
		os.Exit(1)
	}
	l := logx.Console(logx.Info)
	if *d {
		l = logx.Console(logx.Debug)
	}
	if len(c.LogFile) > 0 {
		v, err := logx.File(c.LogFile, logx.Append, logx.Level(c.LogLevel))
		if err != nil {
			os.Stderr.WriteString("Error opening log file " + c.LogFile + ": " + err.Error() + "!\n")
			os.Exit(1)
		}
		l = logx.Multiple(l, v)
	}
	t, err := mail.NewIMAP(c.Mail)
	if err != nil {
		os.Stderr.WriteString("Error setting up mailbox: " + err.Error() + "!\n")
		os.Exit(1)
	}
	x, cancel := context.WithCancel(context.Background())
	s := rc.New(x, t, gate.New(c.Grants), l)
	s.Dir = c.Results
	if c.Interval > 0 {
		s.Interval = time.Duration(c.Interval) * time.Second
	}
	if err = s.Start(); err != nil {
		cancel()
		os.Stderr.WriteString("Error starting server: " + err.Error() + "!\n")
		os.Exit(1)
	}
	l.Info(`Mail remote control server started on %s as "%s"!`, device.Local.Hostname, t.Address())
	var r *rest.Server
	if len(c.Rest.Bind) > 0 {
		r = rest.NewContext(x, s, c.Rest.Auth)
		go func() {
			if err := r.Listen(c.Rest.Bind); err != nil {
				l.Error("Control interface listen error: %s!", err.Error())
			}
		}()
		l.Info("Control interface listening on %q!", c.Rest.Bind)
	}
	w := make(chan os.Signal, 1)
	signal.Notify(w, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-w:
	case <-x.Done():
	}
	signal.Stop(w)
	if r != nil {
		r.Stop()
	}
	s.Close()
	cancel()
	t.Close()
	l.Info("Shutdown complete, goodbye!")
}
