// SPDX-License-Identifier: MPL-2.0

package qemu

import (
	"os"
	"regexp"
)

// placeholderPattern matches ${NAME} placeholders; NAME is one or more
// characters excluding the closing brace.
var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LookupFunc reports the value of a named variable and whether it is set.
// os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

// Substitute rewrites ${NAME} placeholders in args using the current process
// environment. See SubstituteWith for the exact contract.
func Substitute(args []string) []string {
	return SubstituteWith(args, os.LookupEnv)
}

// SubstituteWith returns a new slice of the same length where every ${NAME}
// occurrence in each argument is replaced by lookup(NAME), left to right.
// Unset variables leave the placeholder untouched, delimiters included, so
// unresolved placeholders stay visible to the user. Substitution is a single
// pass: substituted values are never re-scanned for further placeholders.
func SubstituteWith(args []string, lookup LookupFunc) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = placeholderPattern.ReplaceAllStringFunc(arg, func(match string) string {
			name := match[2 : len(match)-1]
			if value, ok := lookup(name); ok {
				return value
			}
			return match
		})
	}
	return out
}
