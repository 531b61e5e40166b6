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
	"context"
	"time"

	"github.com/swtch9/mrc/rc/task"
)

// State message markers observers can match on.
const (
	MsgDenied    = "access denied"
	MsgUnknown   = "unknown command"
	MsgGranted   = "access already granted"
	MsgRequested = "access requested"
)

// handle runs one Command through the access gate and the handler table,
// mailing the outcome back to the sender and updating the observable State.
// The sender is visible to observers before any side effect runs.
func (s *Server) handle(x context.Context, c Command) {
	s.Log.Info(`[dispatch] Received command "%s" from "%s".`, c.Tag, c.Sender)
	v := State{When: time.Now(), Command: c.Tag, From: c.Sender}
	s.setState(v)
	if t, ok := task.Tags[c.Tag]; ok && t == task.MvRequestAccess {
		s.request(x, c, &v)
		s.setState(v)
		return
	}
	if !s.g.Authorized(c.Sender) {
		s.Log.Warning(`[dispatch] Denied "%s" from unauthorized sender "%s"!`, c.Tag, c.Sender)
		err := s.t.Send(x, c.Sender, "Re: "+c.Tag,
			`Access denied. Send a message with the subject "`+Marker+`requestAccess" to ask for access.`,
		)
		if err != nil {
			s.Log.Error(`[dispatch] Denial notice to "%s" failed: %s!`, c.Sender, err.Error())
		}
		v.Message = MsgDenied
		s.setState(v)
		return
	}
	t, ok := task.Tags[c.Tag]
	if !ok || task.Mappings[t] == nil {
		// Dropped without a reply on purpose, answering unknown tags would
		// answer every piece of noise that lands in the inbox.
		s.Log.Warning(`[dispatch] Unknown command "%s" from "%s"!`, c.Tag, c.Sender)
		v.Message = MsgUnknown
		s.setState(v)
		return
	}
	r, err := task.Mappings[t](x, task.Env{Sys: s.Sys, Mail: s.t, Dir: s.Dir}, task.Request{
		Tag: c.Tag, Sender: c.Sender, Content: c.Content, ID: t,
	})
	if err != nil {
		// Handler failures still produce a best effort, message only reply.
		s.Log.Error(`[dispatch] Command "%s" from "%s" failed: %s!`, c.Tag, c.Sender, err.Error())
		v.Message = c.Tag + " failed: " + err.Error()
		if err = s.t.Send(x, c.Sender, "Re: "+c.Tag, v.Message); err != nil {
			s.Log.Error(`[dispatch] Reply to "%s" failed: %s!`, c.Sender, err.Error())
		}
		s.setState(v)
		return
	}
	s.Log.Info(`[dispatch] Command "%s" from "%s" completed: %s.`, c.Tag, c.Sender, r.Message)
	if len(r.File) > 0 {
		err = s.t.Send(x, c.Sender, "Re: "+c.Tag, r.Message, r.File)
	} else {
		err = s.t.Send(x, c.Sender, "Re: "+c.Tag, r.Message)
	}
	if err != nil {
		s.Log.Error(`[dispatch] Reply to "%s" failed: %s!`, c.Sender, err.Error())
	}
	v.Message = r.Message
	s.setState(v)
}

// request handles the requestAccess command. An already authorized sender is
// short-circuited with an informational reply, everyone else lands in the
// pending list until a human approves or denies through the control surface.
// Access is never granted from here.
func (s *Server) request(x context.Context, c Command, v *State) {
	if r, ok := s.g.Remaining(c.Sender); ok {
		s.Log.Info(`[dispatch] Sender "%s" already holds a grant (%s remaining).`, c.Sender, r.String())
		if err := s.t.Send(x, c.Sender, "Re: "+c.Tag, "Access already granted, "+r.String()+" remaining."); err != nil {
			s.Log.Error(`[dispatch] Reply to "%s" failed: %s!`, c.Sender, err.Error())
		}
		v.Message = MsgGranted
		return
	}
	s.lock.Lock()
	s.requests[c.Sender] = time.Now()
	s.lock.Unlock()
	s.Log.Info(`[dispatch] Sender "%s" requested access, awaiting approval.`, c.Sender)
	v.Message = MsgRequested
}
