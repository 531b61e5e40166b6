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
	"bytes"
	"encoding/json"
	"testing"
)

func TestState(t *testing.T) {
	if !(State{}).Empty() {
		t.Fatalf("TestState(): Empty should return true for a zero State!")
	}
	if (State{Message: MsgDenied}).Empty() {
		t.Fatalf("TestState(): Empty should return false for a State with a message!")
	}
}
func TestStateJSON(t *testing.T) {
	var b bytes.Buffer
	if err := (State{}).JSON(&b); err != nil {
		t.Fatalf("TestStateJSON(): JSON failed with error: %s!", err.Error())
	}
	if b.String() != "{}" {
		t.Fatalf(`TestStateJSON(): Empty State produced "%s" instead of "{}"!`, b.String())
	}
	b.Reset()
	if err := (State{Command: "listProcess", From: "a@b.com", Message: `found "2"`}).JSON(&b); err != nil {
		t.Fatalf("TestStateJSON(): JSON failed with error: %s!", err.Error())
	}
	var v map[string]string
	if err := json.Unmarshal(b.Bytes(), &v); err != nil {
		t.Fatalf("TestStateJSON(): Output did not decode: %s!", err.Error())
	}
	if v["command"] != "listProcess" || v["from"] != "a@b.com" || v["message"] != `found "2"` {
		t.Fatalf(`TestStateJSON(): Output "%s" is missing fields!`, b.String())
	}
}
