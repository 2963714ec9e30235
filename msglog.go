// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fcs

import "fmt"

// Level classifies a message recorded during a load or save operation.
type Level uint8

const (
	// LevelWarning marks a recoverable deviation from the FCS
	// standard. Parsing continued.
	LevelWarning Level = iota + 1
	// LevelError marks a structural failure. The operation also
	// returned an error carrying the same text.
	LevelError
)

func (lvl Level) String() string {
	switch lvl {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", uint8(lvl))
}

// Msg is one entry of a file's message log.
type Msg struct {
	Level Level
	Text  string
}

// MsgLog collects the non-fatal diagnostics of a load or save
// operation. It is reset at the start of every operation, so it only
// ever describes the most recent one.
type MsgLog struct {
	msgs []Msg
}

// Reset drops all recorded messages.
func (l *MsgLog) Reset() { l.msgs = l.msgs[:0] }

// Messages returns all recorded messages, in order of occurrence.
func (l *MsgLog) Messages() []Msg {
	out := make([]Msg, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Warnings returns the recorded warning messages, in order of
// occurrence.
func (l *MsgLog) Warnings() []Msg {
	var out []Msg
	for _, m := range l.msgs {
		if m.Level == LevelWarning {
			out = append(out, m)
		}
	}
	return out
}

func (l *MsgLog) warnf(format string, args ...interface{}) {
	l.msgs = append(l.msgs, Msg{Level: LevelWarning, Text: fmt.Sprintf(format, args...)})
}

func (l *MsgLog) errorf(format string, args ...interface{}) {
	l.msgs = append(l.msgs, Msg{Level: LevelError, Text: fmt.Sprintf(format, args...)})
}
