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

package task

import "time"

// Power action values accepted by System.Power.
const (
	PowerShutdown Power = iota
	PowerRestart
	PowerSleep
	PowerLock
	PowerHibernate
)

// Power is a power state transition to request from the System.
type Power uint8

// System is the platform capability set Runners delegate their side effects
// to. Implementations are external to this package, tests use a fake and the
// server binary wires in whatever the host platform provides.
//
// Capture functions write their artifact to the supplied file path. Duration
// bound functions are expected to block until the duration elapses and honor
// it internally, the poll loop will not interrupt them.
type System interface {
	Processes() ([]Process, error)
	StartProcess(n string) error
	KillProcess(n string) error
	Services() ([]Service, error)
	StartService(n string) error
	StopService(n string) error
	Files(d string) ([]File, error)
	CaptureScreen(p string) error
	CaptureWebcam(p string) error
	RecordWebcam(p string, d time.Duration) error
	TrackKeyboard(p string, d time.Duration) error
	Power(a Power) error
}

// Process is a single running process record.
type Process struct {
	Name   string
	PID    uint32
	Memory uint64
}

// Service is a single system service record.
type Service struct {
	Name    string
	Display string
	Status  string
}

// File is a single directory entry record.
type File struct {
	Modified time.Time
	Name     string
	Size     int64
	Dir      bool
}

// String returns the name of this Power action.
func (p Power) String() string {
	switch p {
	case PowerShutdown:
		return "shutdown"
	case PowerRestart:
		return "restart"
	case PowerSleep:
		return "sleep"
	case PowerLock:
		return "lock"
	case PowerHibernate:
		return "hibernate"
	}
	return "invalid"
}
