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

// Package mail supplies the mailbox transport used as the command channel.
//
// The server core only depends on the Transport interface. The IMAP type in
// this package is the standard implementation, backed by an IMAP inbox for
// receiving and SMTP for sending.
package mail

import (
	"context"
	"time"
)

// Message is a single entry fetched from the command mailbox.
type Message struct {
	Received time.Time
	ID       string
	From     string
	Subject  string
	Body     string
}

// Transport is the interface the server core uses to talk to the mailbox.
//
// FetchSince returns the messages received after the supplied timestamp that
// contain the supplied substring in their Subject. A zero timestamp means no
// lower bound. Send delivers a message to the supplied address, attaching the
// listed file paths, if any. RefreshAuth re-establishes mailbox credentials
// after an authorization failure.
type Transport interface {
	Address() string
	RefreshAuth(ctx context.Context) error
	Send(ctx context.Context, to, subject, body string, files ...string) error
	FetchSince(ctx context.Context, t time.Time, match string) ([]Message, error)
}

// Reader is an optional interface a Transport may implement to expose the
// most recent inbox contents, regardless of Subject or timestamp.
type Reader interface {
	Recent(ctx context.Context, n int) ([]Message, error)
}
