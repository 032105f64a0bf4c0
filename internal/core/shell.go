package core

import "strings"

// ShellEscapePosix returns a single shell token using single-quote strategy,
// including surrounding single quotes.
// example: abc -> 'abc'
// example: a'b -> 'a'"'"'b'
// example: "" -> ''
func ShellEscapePosix(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", "'\"'\"'")
	return "'" + escaped + "'"
}

// FormatCommand renders argv as a line that can be pasted into a POSIX shell.
// Tokens made only of safe characters are left bare.
// example: cargo run --release --bin day-1-2023
// example: cargo new --name 'a b'
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteIfNeeded(name))
	for _, a := range args {
		parts = append(parts, quoteIfNeeded(a))
	}
	return strings.Join(parts, " ")
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	for _, r := range s {
		if !isShellSafe(r) {
			return ShellEscapePosix(s)
		}
	}
	return s
}

func isShellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_./=:@+,", r)
}
