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
	"io"
	"time"

	"github.com/PurpleSec/escape"
)

// State is the observable snapshot of the command currently (or most
// recently) handled in a poll cycle. It is a value, observers receive copies
// through the Server Update callback or the State function, an empty State
// means the last cycle found nothing.
type State struct {
	When    time.Time
	Command string
	From    string
	Message string
}

// Empty returns true if this State carries no command data.
func (s State) Empty() bool {
	return len(s.Command) == 0 && len(s.From) == 0 && len(s.Message) == 0
}

// JSON writes the data of this State as a JSON object to the supplied Writer.
func (s State) JSON(w io.Writer) error {
	if s.Empty() {
		_, err := w.Write([]byte(`{}`))
		return err
	}
	if _, err := w.Write([]byte(`{"command":` + escape.JSON(s.Command) + `,` +
		`"from":` + escape.JSON(s.From) + `,` +
		`"message":` + escape.JSON(s.Message),
	)); err != nil {
		return err
	}
	if !s.When.IsZero() {
		if _, err := w.Write([]byte(`,"when":"` + s.When.Format(time.RFC3339) + `"`)); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte{'}'})
	return err
}
