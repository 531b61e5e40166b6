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

	"github.com/swtch9/mrc/util/xerr"
)

// ErrInvalidPower is returned when a power command ID has no matching Power
// action. Seeing it means Tags and the powers table drifted apart.
var ErrInvalidPower = xerr.New("invalid power action")

var powers = map[uint8]Power{
	TvPowerShutdown:  PowerShutdown,
	TvPowerRestart:   PowerRestart,
	TvPowerSleep:     PowerSleep,
	TvPowerLock:      PowerLock,
	TvPowerHibernate: PowerHibernate,
}

// runPower backs all five power tags, the Request ID selects the action.
func runPower(_ context.Context, e Env, r Request) (Result, error) {
	if e.Sys == nil {
		return Result{}, ErrNoSystem
	}
	a, ok := powers[r.ID]
	if !ok {
		return Result{}, ErrInvalidPower
	}
	if err := e.Sys.Power(a); err != nil {
		return Result{}, err
	}
	return Result{Message: `power action "` + a.String() + `" issued`}, nil
}
