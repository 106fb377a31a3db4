// Package interpolation expands the ${...} expressions found in Maven
// descriptors and settings files.
package interpolation

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const maxPasses = 10

var expression = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expander expands expressions against registered values, environment
// variables (${env.NAME}) and the usual Java system properties.
// Unknown expressions are left untouched.
type Expander struct {
	values map[string]string
}

// New returns an Expander without registered values.
func New() *Expander {
	return &Expander{values: make(map[string]string)}
}

// Set registers value under key. Registered values win over the environment
// and system properties.
func (e *Expander) Set(key, value string) {
	e.values[key] = value
}

// Expand replaces expressions in s until nothing changes. Values may refer to
// other expressions.
func (e *Expander) Expand(s string) string {
	for range maxPasses {
		if !strings.Contains(s, "${") {
			return s
		}
		next := expression.ReplaceAllStringFunc(s, func(m string) string {
			if v, ok := e.Lookup(m[2 : len(m)-1]); ok {
				return v
			}
			return m
		})
		if next == s {
			return s
		}
		s = next
	}
	return s
}

// Value expands s and trims the surrounding whitespace XML leaves around text.
func (e *Expander) Value(s string) string {
	return strings.TrimSpace(e.Expand(s))
}

// Lookup returns the value of the expression key, without the ${} delimiters.
func (e *Expander) Lookup(key string) (string, bool) {
	if v, ok := e.values[key]; ok {
		return v, true
	}
	if name, ok := strings.CutPrefix(key, "env."); ok {
		return os.LookupEnv(name)
	}
	return systemProperty(key)
}

func systemProperty(key string) (string, bool) {
	switch key {
	case "user.home":
		home, err := os.UserHomeDir()
		return home, err == nil
	case "user.dir":
		wd, err := os.Getwd()
		return wd, err == nil
	case "user.name":
		if u := os.Getenv("USER"); u != "" {
			return u, true
		}
		return "", false
	case "file.separator":
		return string(filepath.Separator), true
	case "path.separator":
		return string(os.PathListSeparator), true
	case "line.separator":
		return "\n", true
	case "os.name":
		return runtime.GOOS, true
	case "os.arch":
		return runtime.GOARCH, true
	default:
		return "", false
	}
}
