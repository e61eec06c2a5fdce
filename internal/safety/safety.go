// Package safety gates every command string before it may run. It is the
// single enforcement point between free-text interpretation and process
// execution; both builtin and LLM-derived commands pass through it
// unconditionally.
package safety

import (
	"strings"

	"archassist/internal/types"
)

// blocklist holds substrings that must never appear in a runnable command:
// shell metacharacters enabling chaining, redirection or substitution, and
// specific destructive invocations.
var blocklist = []string{
	"|", ">", "<", "&&", "||", ";", "`", "$(",
	"rm -rf", "mkfs", "dd ", " :",
}

// allowlist restricts the leading token to known administration programs.
// "launch" is the pseudo-command the runner hands to the desktop launcher.
var allowlist = map[string]bool{
	"sudo":         true,
	"pacman":       true,
	"paru":         true,
	"systemctl":    true,
	"nmcli":        true,
	"pactl":        true,
	"bluetoothctl": true,
	"journalctl":   true,
	"timedatectl":  true,
	"echo":         true,
	"launch":       true,
}

// Validate rejects command unless it is free of blocklisted substrings and
// its first whitespace-delimited token is an allowlisted program. It is
// pure and deterministic over all inputs.
func Validate(command string) error {
	for _, bad := range blocklist {
		if strings.Contains(command, bad) {
			return types.Unsafe("%s", command)
		}
	}

	fields := strings.Fields(command)
	first := ""
	if len(fields) > 0 {
		first = fields[0]
	}
	if !allowlist[first] {
		return types.Unsafe("%s", command)
	}

	return nil
}

// Allowed reports whether program is an allowlisted leading token.
func Allowed(program string) bool {
	return allowlist[program]
}
