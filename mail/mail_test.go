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
	"strings"
	"testing"
)

func TestNewIMAP(t *testing.T) {
	if _, err := NewIMAP(Config{Server: "imap.gmail.com:993"}); err != ErrNoAccount {
		t.Fatalf("TestNewIMAP(): NewIMAP without an account should return ErrNoAccount, not %v!", err)
	}
	m, err := NewIMAP(Config{Server: "imap.gmail.com:993", SMTP: "smtp.gmail.com", Address: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("TestNewIMAP(): NewIMAP failed with error: %s!", err.Error())
	}
	if m.Address() != "a@b.com" {
		t.Fatalf(`TestNewIMAP(): Address "%s" did not match "a@b.com"!`, m.Address())
	}
	if m.cfg.SMTPPort != 587 {
		t.Fatalf("TestNewIMAP(): SMTPPort should default to 587, not %d!", m.cfg.SMTPPort)
	}
}
func TestBody(t *testing.T) {
	v := body(strings.NewReader("Subject: hello\r\nFrom: a@b.com\r\n\r\nlistProcess body here\r\n"))
	if v != "listProcess body here" {
		t.Fatalf(`TestBody(): Parsed body "%s" did not match "listProcess body here"!`, v)
	}
	if v = body(nil); len(v) > 0 {
		t.Fatalf(`TestBody(): A nil reader should return an empty string, not "%s"!`, v)
	}
	if v = body(strings.NewReader("not a mail message")); len(v) > 0 {
		t.Fatalf(`TestBody(): An invalid message should return an empty string, not "%s"!`, v)
	}
}
