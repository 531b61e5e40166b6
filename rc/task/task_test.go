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
	"os"
	"strings"
	"testing"
	"time"

	"github.com/swtch9/mrc/mail"
	"github.com/swtch9/mrc/util/xerr"
)

type testSystem struct {
	fail  map[string]bool
	last  Power
	procs []Process
}

func (s *testSystem) Processes() ([]Process, error) {
	return s.procs, nil
}
func (s *testSystem) StartProcess(n string) error {
	return s.pick(n)
}
func (s *testSystem) KillProcess(n string) error {
	return s.pick(n)
}
func (s *testSystem) Services() ([]Service, error) {
	return []Service{{Name: "spooler", Display: "Print Spooler", Status: "running"}}, nil
}
func (s *testSystem) StartService(n string) error {
	return s.pick(n)
}
func (s *testSystem) StopService(n string) error {
	return s.pick(n)
}
func (s *testSystem) Files(string) ([]File, error) {
	return []File{{Name: "a.txt", Size: 16}, {Name: "sub", Dir: true}}, nil
}
func (s *testSystem) CaptureScreen(p string) error {
	return os.WriteFile(p, []byte("jpg"), 0644)
}
func (s *testSystem) CaptureWebcam(p string) error {
	return os.WriteFile(p, []byte("jpg"), 0644)
}
func (s *testSystem) RecordWebcam(p string, _ time.Duration) error {
	return os.WriteFile(p, []byte("avi"), 0644)
}
func (s *testSystem) TrackKeyboard(p string, _ time.Duration) error {
	return os.WriteFile(p, []byte("keys"), 0644)
}
func (s *testSystem) Power(a Power) error {
	s.last = a
	return nil
}
func (s *testSystem) pick(n string) error {
	if s.fail[n] {
		return xerr.New("not found")
	}
	return nil
}

type testMail struct{}

func (testMail) Address() string {
	return "server@test.com"
}
func (testMail) RefreshAuth(context.Context) error {
	return nil
}
func (testMail) Send(context.Context, string, string, string, ...string) error {
	return nil
}
func (testMail) FetchSince(context.Context, time.Time, string) ([]mail.Message, error) {
	return nil, nil
}
func (testMail) Recent(_ context.Context, n int) ([]mail.Message, error) {
	return []mail.Message{{From: "a@b.com", Subject: "hello", Body: "hi"}}, nil
}

func testEnv(t *testing.T) Env {
	return Env{Sys: new(testSystem), Mail: testMail{}, Dir: t.TempDir()}
}
func TestMappings(t *testing.T) {
	for k, v := range Tags {
		if v == MvRequestAccess {
			continue
		}
		if Mappings[v] == nil {
			t.Fatalf(`TestMappings(): Tag "%s" (0x%X) has no Runner mapping!`, k, v)
		}
	}
	if Mappings[MvRequestAccess] != nil {
		t.Fatalf("TestMappings(): MvRequestAccess should not have a Runner mapping!")
	}
}
func TestRequestArgs(t *testing.T) {
	r := Request{Content: "  notepad.exe   calc.exe\tcmd.exe "}
	if a := r.Args(); len(a) != 3 || a[0] != "notepad.exe" || a[2] != "cmd.exe" {
		t.Fatalf(`TestRequestArgs(): Args returned "%v" instead of three names!`, a)
	}
	if a := (Request{}).Args(); len(a) != 0 {
		t.Fatalf(`TestRequestArgs(): Args on an empty body returned "%v"!`, a)
	}
}
func TestRequestDuration(t *testing.T) {
	if d := (Request{Content: "30"}).Duration(time.Second * 5); d != time.Second*30 {
		t.Fatalf(`TestRequestDuration(): Duration returned "%s" instead of "30s"!`, d.String())
	}
	if d := (Request{Content: "derp"}).Duration(time.Second * 5); d != time.Second*5 {
		t.Fatalf(`TestRequestDuration(): Duration should fall back to the default, got "%s"!`, d.String())
	}
	if d := (Request{}).Duration(time.Second * 5); d != time.Second*5 {
		t.Fatalf(`TestRequestDuration(): Duration on an empty body should be the default, got "%s"!`, d.String())
	}
}
func TestProcessList(t *testing.T) {
	e := testEnv(t)
	e.Sys.(*testSystem).procs = []Process{
		{Name: "winlogon.exe", PID: 612, Memory: 1024},
		{Name: "notepad.exe", PID: 4288, Memory: 2048},
	}
	r, err := runProcessList(context.Background(), e, Request{ID: TvListProcess})
	if err != nil {
		t.Fatalf("TestProcessList(): Runner failed with error: %s!", err.Error())
	}
	if r.Message != "found 2 running processes" {
		t.Fatalf(`TestProcessList(): Result message "%s" was not expected!`, r.Message)
	}
	b, err := os.ReadFile(r.File)
	if err != nil {
		t.Fatalf("TestProcessList(): Artifact read failed with error: %s!", err.Error())
	}
	if !strings.Contains(string(b), "notepad.exe\t4288\t2048") {
		t.Fatalf(`TestProcessList(): Artifact "%s" is missing a process line!`, b)
	}
}
func TestProcessEnd(t *testing.T) {
	e := testEnv(t)
	e.Sys.(*testSystem).fail = map[string]bool{"missing.exe": true}
	r, err := runProcessEnd(context.Background(), e, Request{Content: "notepad.exe missing.exe", ID: TvEndProcess})
	if err != nil {
		t.Fatalf("TestProcessEnd(): Runner failed with error: %s!", err.Error())
	}
	if !strings.HasPrefix(r.Message, "ended 1 of 2 processes") {
		t.Fatalf(`TestProcessEnd(): Result message "%s" was not expected!`, r.Message)
	}
	if !strings.Contains(r.Message, "missing.exe") {
		t.Fatalf(`TestProcessEnd(): Result message "%s" should name the failed target!`, r.Message)
	}
	if _, err = runProcessEnd(context.Background(), e, Request{ID: TvEndProcess}); err != ErrNoTargets {
		t.Fatalf("TestProcessEnd(): Runner with an empty body should return ErrNoTargets!")
	}
}
func TestPower(t *testing.T) {
	e := testEnv(t)
	r, err := runPower(context.Background(), e, Request{ID: TvPowerLock})
	if err != nil {
		t.Fatalf("TestPower(): Runner failed with error: %s!", err.Error())
	}
	if e.Sys.(*testSystem).last != PowerLock {
		t.Fatalf(`TestPower(): System received action "%s" instead of "lock"!`, e.Sys.(*testSystem).last.String())
	}
	if !strings.Contains(r.Message, "lock") {
		t.Fatalf(`TestPower(): Result message "%s" should name the action!`, r.Message)
	}
	if _, err = runPower(context.Background(), e, Request{ID: TvSysInfo}); err != ErrInvalidPower {
		t.Fatalf("TestPower(): Runner with a non-power ID should return ErrInvalidPower!")
	}
}
func TestCapture(t *testing.T) {
	e := testEnv(t)
	r, err := runCaptureScreen(context.Background(), e, Request{ID: TvCaptureScreen})
	if err != nil {
		t.Fatalf("TestCapture(): Runner failed with error: %s!", err.Error())
	}
	if len(r.File) == 0 || !strings.HasSuffix(r.File, ".jpg") {
		t.Fatalf(`TestCapture(): Artifact path "%s" was not expected!`, r.File)
	}
	if _, err = os.Stat(r.File); err != nil {
		t.Fatalf("TestCapture(): Artifact was not written: %s!", err.Error())
	}
	if _, err = runCaptureScreen(context.Background(), Env{Dir: t.TempDir()}, Request{}); err != ErrNoSystem {
		t.Fatalf("TestCapture(): Runner without a System should return ErrNoSystem!")
	}
}
func TestRecentEmails(t *testing.T) {
	r, err := runRecentEmails(context.Background(), testEnv(t), Request{ID: TvReadRecentEmails})
	if err != nil {
		t.Fatalf("TestRecentEmails(): Runner failed with error: %s!", err.Error())
	}
	if r.Message != "read 1 recent messages" {
		t.Fatalf(`TestRecentEmails(): Result message "%s" was not expected!`, r.Message)
	}
	b, err := os.ReadFile(r.File)
	if err != nil {
		t.Fatalf("TestRecentEmails(): Artifact read failed with error: %s!", err.Error())
	}
	if !strings.Contains(string(b), "From: a@b.com") {
		t.Fatalf(`TestRecentEmails(): Artifact "%s" is missing the sender line!`, b)
	}
}
