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
	"strings"
	"time"

	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/util/xerr"
)

// ErrNoMarker is returned by Parse when the message Subject does not contain
// the command Marker.
var ErrNoMarker = xerr.New("subject does not contain the command marker")

// Command is one parsed command message, consumed by a single dispatch pass
// and never persisted.
type Command struct {
	Received time.Time
	Tag      string
	Sender   string
	Content  string
}

// Parse extracts a Command from the supplied Message. The tag is the trimmed
// Subject remainder after the Marker, with no validation against the known
// command set, unknown tags are rejected later during dispatch. The Body is
// carried as free-form content for handlers that take arguments.
func Parse(m mail.Message) (Command, error) {
	i := strings.Index(m.Subject, Marker)
	if i == -1 {
		return Command{}, ErrNoMarker
	}
	return Command{
		Tag: strings.TrimSpace(m.Subject[i+len(Marker):]), Sender: m.From,
		Content: strings.TrimSpace(m.Body), Received: m.Received,
	}, nil
}
