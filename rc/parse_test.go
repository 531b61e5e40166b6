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

package rc

import (
	"testing"

	"github.com/swtch9/mrc/mail"
)

func TestParse(t *testing.T) {
	c, err := Parse(mail.Message{Subject: "Re: Command::listProcess", From: "a@b.com"})
	if err != nil {
		t.Fatalf("TestParse(): Parse failed with error: %s!", err.Error())
	}
	if c.Tag != "listProcess" {
		t.Fatalf(`TestParse(): Tag "%s" did not match "listProcess"!`, c.Tag)
	}
	if c.Sender != "a@b.com" {
		t.Fatalf(`TestParse(): Sender "%s" did not match "a@b.com"!`, c.Sender)
	}
}
func TestParseContent(t *testing.T) {
	c, err := Parse(mail.Message{Subject: "Command::endProcess", From: "a@b.com", Body: " notepad.exe calc.exe \r\n"})
	if err != nil {
		t.Fatalf("TestParseContent(): Parse failed with error: %s!", err.Error())
	}
	if c.Content != "notepad.exe calc.exe" {
		t.Fatalf(`TestParseContent(): Content "%s" was not trimmed as expected!`, c.Content)
	}
}
func TestParseTrim(t *testing.T) {
	c, err := Parse(mail.Message{Subject: "Command::  captureScreen  "})
	if err != nil {
		t.Fatalf("TestParseTrim(): Parse failed with error: %s!", err.Error())
	}
	if c.Tag != "captureScreen" {
		t.Fatalf(`TestParseTrim(): Tag "%s" was not trimmed as expected!`, c.Tag)
	}
}
func TestParseNoMarker(t *testing.T) {
	if _, err := Parse(mail.Message{Subject: "Hello there", From: "a@b.com"}); err != ErrNoMarker {
		t.Fatalf("TestParseNoMarker(): Parse should return ErrNoMarker, not %v!", err)
	}
}
func TestParseUnknownTag(t *testing.T) {
	// Unknown tags are a valid parse result, they are rejected at dispatch.
	c, err := Parse(mail.Message{Subject: "Command::doTheImpossible"})
	if err != nil {
		t.Fatalf("TestParseUnknownTag(): Parse failed with error: %s!", err.Error())
	}
	if c.Tag != "doTheImpossible" {
		t.Fatalf(`TestParseUnknownTag(): Tag "%s" did not match "doTheImpossible"!`, c.Tag)
	}
}
