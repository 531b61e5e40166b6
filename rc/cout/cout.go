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

// Package cout is a nil-safe wrapper around a logx Logger that allows the
// server core to log without checking for a missing or disabled logger at
// every call site.
package cout

import "github.com/PurpleSec/logx"

// Log is a wrapper for any logx compatible logger that is safe to call when
// nil or unset.
type Log struct {
	logx.Log
}

// New creates a Log instance from a logx Logger.
func New(l logx.Log) *Log {
	return &Log{Log: l}
}

// Set updates the internal logger. This function is a NOP if the Log is nil.
func (l *Log) Set(v logx.Log) {
	if l == nil {
		return
	}
	l.Log = v
}

// Info writes an informational message to the logger.
// The function arguments are similar to fmt.Sprintf and fmt.Printf.
func (l *Log) Info(s string, v ...interface{}) {
	if l == nil || l.Log == nil {
		return
	}
	l.Log.Info(s, v...)
}

// Error writes an error message to the logger.
// The function arguments are similar to fmt.Sprintf and fmt.Printf.
func (l *Log) Error(s string, v ...interface{}) {
	if l == nil || l.Log == nil {
		return
	}
	l.Log.Error(s, v...)
}

// Trace writes a tracing message to the logger.
// The function arguments are similar to fmt.Sprintf and fmt.Printf.
func (l *Log) Trace(s string, v ...interface{}) {
	if l == nil || l.Log == nil {
		return
	}
	l.Log.Trace(s, v...)
}

// Debug writes a debugging message to the logger.
// The function arguments are similar to fmt.Sprintf and fmt.Printf.
func (l *Log) Debug(s string, v ...interface{}) {
	if l == nil || l.Log == nil {
		return
	}
	l.Log.Debug(s, v...)
}

// Warning writes a warning message to the logger.
// The function arguments are similar to fmt.Sprintf and fmt.Printf.
func (l *Log) Warning(s string, v ...interface{}) {
	if l == nil || l.Log == nil {
		return
	}
	l.Log.Warning(s, v...)
}
