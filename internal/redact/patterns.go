package redact

import (
	"fmt"
	"regexp"
)

// compilePatterns validates and compiles caller-supplied patterns in order.
// Malformed entries are skipped, never aborting the call; each skip is
// reported so the engine can log it. A call with zero valid patterns behaves
// identically to one with none supplied.
func compilePatterns(entries []CustomPattern) ([]compiledPattern, []*Error) {
	var compiled []compiledPattern
	var skipped []*Error

	for _, entry := range entries {
		if entry.Name == "" || entry.Pattern == "" {
			skipped = append(skipped, &Error{
				Kind:    ErrorKindPatternCompile,
				Message: fmt.Sprintf("custom pattern %q missing name or pattern", entry.Name),
			})
			continue
		}

		re, err := regexp.Compile(entry.Pattern)
		if err != nil {
			skipped = append(skipped, &Error{
				Kind:    ErrorKindPatternCompile,
				Message: fmt.Sprintf("custom pattern %q does not compile: %v", entry.Name, err),
			})
			continue
		}

		compiled = append(compiled, compiledPattern{
			name:        entry.Name,
			re:          re,
			replacement: entry.Replacement,
		})
	}

	return compiled, skipped
}
