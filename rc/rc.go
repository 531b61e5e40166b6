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

// Package rc is the mail remote control server core.
//
// The Server polls a mailbox Transport for messages whose Subject carries the
// command marker, parses each into a Command, gates the sender through the
// access Store and dispatches to the handler table in the task package. Every
// outcome is reported back to the sender by mail and exposed to observers as
// a State snapshot.
package rc

import (
	"encoding/json"
	"os"
	"time"

	"github.com/swtch9/mrc/mail"
)

// Marker is the literal Subject substring that makes a message a command.
// The tag is everything after it, trimmed.
const Marker = "Command::"

// DefaultInterval is the poll cadence used when the Server is not given one.
const DefaultInterval = time.Second * 10

// Config is the static runtime configuration of the server binary, loaded
// once from a JSON file and immutable afterwards.
type Config struct {
	Mail     mail.Config `json:"mail"`
	Grants   string      `json:"grants"`
	Results  string      `json:"results,omitempty"`
	LogFile  string      `json:"log_file,omitempty"`
	LogLevel int         `json:"log_level,omitempty"`
	Interval int         `json:"interval,omitempty"`
	Rest     struct {
		Bind string `json:"bind,omitempty"`
		Auth string `json:"auth,omitempty"`
	} `json:"rest,omitempty"`
}

// LoadConfig reads and decodes a Config from the supplied JSON file path.
func LoadConfig(p string) (Config, error) {
	var c Config
	b, err := os.ReadFile(p)
	if err != nil {
		return c, err
	}
	if err = json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	if len(c.Grants) == 0 {
		c.Grants = "grants.json"
	}
	return c, nil
}
