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

package mail

import (
	"context"
	"crypto/tls"
	"io"
	nmail "net/mail"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/swtch9/mrc/util/xerr"
	"gopkg.in/gomail.v2"
)

// ErrNoAccount is returned by Connect when the supplied Config is missing the
// mailbox address or password.
var ErrNoAccount = xerr.New("mailbox address and password are required")

// Config holds the mailbox account settings for the IMAP Transport.
type Config struct {
	Server   string `json:"server"`
	SMTP     string `json:"smtp"`
	Address  string `json:"address"`
	Password string `json:"password"`
	SMTPPort int    `json:"smtp_port,omitempty"`
	Insecure bool   `json:"insecure,omitempty"`
}

// IMAP is a Transport that reads the command mailbox over IMAP and sends
// replies over SMTP. The Transport is safe for use by a single reader at a
// time, the internal lock protects the shared IMAP connection between the
// poll and control threads.
type IMAP struct {
	c    *client.Client
	cfg  Config
	lock sync.Mutex
}

// NewIMAP creates an IMAP Transport from the supplied Config. No connection
// is made until the first fetch.
func NewIMAP(c Config) (*IMAP, error) {
	if len(c.Address) == 0 || len(c.Password) == 0 {
		return nil, ErrNoAccount
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 587
	}
	return &IMAP{cfg: c}, nil
}

// Address returns the mailbox address this Transport is logged in as.
func (m *IMAP) Address() string {
	return m.cfg.Address
}

// Close logs out and drops the IMAP connection, if one is open.
func (m *IMAP) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.c == nil {
		return nil
	}
	err := m.c.Logout()
	m.c = nil
	return err
}
func (m *IMAP) connect() error {
	if m.c != nil {
		m.c.Logout()
		m.c = nil
	}
	c, err := client.DialTLS(m.cfg.Server, &tls.Config{InsecureSkipVerify: m.cfg.Insecure})
	if err != nil {
		return xerr.Wrap(`unable to connect to "`+m.cfg.Server+`"`, err)
	}
	if err = c.Login(m.cfg.Address, m.cfg.Password); err != nil {
		c.Logout()
		return xerr.Wrap(`unable to login as "`+m.cfg.Address+`"`, err)
	}
	if _, err = c.Select("INBOX", false); err != nil {
		c.Logout()
		return xerr.Wrap("unable to select inbox", err)
	}
	m.c = c
	return nil
}
func (m *IMAP) check() error {
	if m.c == nil {
		return m.connect()
	}
	if err := m.c.Noop(); err != nil {
		return m.connect()
	}
	return nil
}

// RefreshAuth drops the current connection and performs a fresh login.
func (m *IMAP) RefreshAuth(_ context.Context) error {
	m.lock.Lock()
	err := m.connect()
	m.lock.Unlock()
	return err
}

// Send delivers a message to the supplied address over SMTP. Any supplied
// file paths are added as attachments.
func (m *IMAP) Send(_ context.Context, to, subject, body string, files ...string) error {
	v := gomail.NewMessage()
	v.SetHeader("From", m.cfg.Address)
	v.SetHeader("To", to)
	v.SetHeader("Subject", subject)
	v.SetBody("text/plain", body)
	for i := range files {
		if len(files[i]) == 0 {
			continue
		}
		v.Attach(files[i])
	}
	d := gomail.NewDialer(m.cfg.SMTP, m.cfg.SMTPPort, m.cfg.Address, m.cfg.Password)
	if m.cfg.Insecure {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if err := d.DialAndSend(v); err != nil {
		return xerr.Wrap(`unable to send to "`+to+`"`, err)
	}
	return nil
}

// FetchSince returns the unseen messages received after the supplied
// timestamp that contain the supplied substring in their Subject. Returned
// messages are flagged as seen so a checkpoint reset does not replay them.
func (m *IMAP) FetchSince(_ context.Context, t time.Time, match string) ([]Message, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	s := imap.NewSearchCriteria()
	s.WithoutFlags = []string{imap.SeenFlag}
	if !t.IsZero() {
		// IMAP SINCE is date granular, the exact cut happens below.
		s.Since = t
	}
	u, err := m.c.Search(s)
	if err != nil {
		return nil, xerr.Wrap("unable to search inbox", err)
	}
	if len(u) == 0 {
		return nil, nil
	}
	q := new(imap.SeqSet)
	q.AddNum(u...)
	r, err := m.read(q, len(u), func(v *imap.Message, d time.Time) bool {
		if len(match) > 0 && !strings.Contains(v.Envelope.Subject, match) {
			return false
		}
		return t.IsZero() || d.After(t)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Recent implements the optional Reader interface and returns the newest 'n'
// inbox messages, regardless of Subject, flags or timestamp.
func (m *IMAP) Recent(_ context.Context, n int) ([]Message, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	b := m.c.Mailbox()
	if b == nil || b.Messages == 0 {
		return nil, nil
	}
	f := uint32(1)
	if int(b.Messages) > n {
		f = b.Messages - uint32(n) + 1
	}
	q := new(imap.SeqSet)
	q.AddRange(f, b.Messages)
	return m.read(q, n, nil)
}
func (m *IMAP) read(q *imap.SeqSet, n int, ok func(*imap.Message, time.Time) bool) ([]Message, error) {
	var (
		b = new(imap.BodySectionName)
		c = make(chan *imap.Message, n)
		x = make(chan error, 1)
	)
	b.Peek = true
	go func() {
		x <- m.c.Fetch(q, []imap.FetchItem{imap.FetchEnvelope, imap.FetchInternalDate, b.FetchItem()}, c)
	}()
	var (
		r []Message
		f = new(imap.SeqSet)
	)
	for v := range c {
		if v.Envelope == nil {
			continue
		}
		d := v.InternalDate
		if d.IsZero() {
			d = v.Envelope.Date
		}
		if ok != nil && !ok(v, d) {
			continue
		}
		var a string
		if len(v.Envelope.From) > 0 {
			a = v.Envelope.From[0].Address()
		}
		r = append(r, Message{
			ID: v.Envelope.MessageId, From: a, Subject: v.Envelope.Subject,
			Body: body(v.GetBody(b)), Received: d,
		})
		f.AddNum(v.SeqNum)
	}
	if err := <-x; err != nil {
		return nil, xerr.Wrap("unable to fetch messages", err)
	}
	if ok != nil && !f.Empty() {
		// Best effort, an un-flagged message is re-filtered by the checkpoint.
		m.c.Store(f, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.SeenFlag}, nil)
	}
	return r, nil
}
func body(r io.Reader) string {
	if r == nil {
		return ""
	}
	v, err := nmail.ReadMessage(r)
	if err != nil {
		return ""
	}
	b, err := io.ReadAll(v.Body)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
