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

// Package device contains information about the local machine that the server
// reports in replies, logs and the control API.
package device

import (
	"io"
	"os"
	"os/user"
	"runtime"
	"strconv"

	"github.com/PurpleSec/escape"
	"github.com/denisbrodbeck/machineid"
)

// Local is the Machine instance for the local device. This instance is loaded
// at runtime and is used for identification in logs and command replies.
var Local = acquire()

// Machine is a struct that contains the identifying information of the device
// the server is running on.
type Machine struct {
	ID       string
	Hostname string
	User     string
	OS       string
	Arch     string
	PID      uint32
}

func acquire() Machine {
	m := Machine{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
		PID:  uint32(os.Getpid()),
	}
	if i, err := machineid.ProtectedID("mrc"); err == nil {
		m.ID = i
	}
	if h, err := os.Hostname(); err == nil {
		m.Hostname = h
	}
	if u, err := user.Current(); err == nil {
		m.User = u.Username
	}
	return m
}

// String returns a single line representation of this Machine, suitable for
// command reply bodies.
func (m Machine) String() string {
	return m.User + "@" + m.Hostname + " (" + m.OS + "/" + m.Arch + ", pid " +
		strconv.FormatUint(uint64(m.PID), 10) + ", id " + short(m.ID) + ")"
}
func short(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// JSON writes the data of this Machine as a JSON object to the supplied Writer.
func (m Machine) JSON(w io.Writer) error {
	_, err := w.Write([]byte(`{"id":` + escape.JSON(short(m.ID)) + `,` +
		`"hostname":` + escape.JSON(m.Hostname) + `,` +
		`"user":` + escape.JSON(m.User) + `,` +
		`"os":` + escape.JSON(m.OS+"/"+m.Arch) + `,` +
		`"pid":` + strconv.FormatUint(uint64(m.PID), 10) + `}`,
	))
	return err
}
