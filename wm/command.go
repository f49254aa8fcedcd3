// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: wm/command.go
// Summary: Bridges command calls from the X property channel to the runner.

package wm

import "strings"

// CallCommand runs one argument vector through the wired command runner and
// captures its output streams. An empty vector runs the empty command name,
// which the runner rejects with its usual error path.
func (l *MainLoop) CallCommand(call []string) CommandResult {
	var name string
	var args []string
	if len(call) > 0 {
		name, args = call[0], call[1:]
	}
	var out, errOut strings.Builder
	code := l.co.Commands.Call(name, args, &out, &errOut)
	return CommandResult{
		ExitCode: code,
		Output:   out.String(),
		Error:    errOut.String(),
	}
}
