package envconf

import (
	"fmt"
	"os"
	"sort"
)

// Environment is the capability handed to the configurator instead of the
// process-wide environment: reads consult ambient values, writes land in an
// inspectable mapping that later becomes the orchestration command's
// environment.
type Environment interface {
	// Get returns the value written for key, falling back to the ambient
	// environment, or "".
	Get(key string) string

	// Set records a value for key.
	Set(key, value string)
}

// MapEnvironment implements Environment over a map, with an optional
// ambient lookup for reads.
type MapEnvironment struct {
	values  map[string]string
	ambient func(string) string
}

// NewMapEnvironment creates an Environment with no ambient fallback.
// Tests use this to inspect exactly what the configurator wrote.
func NewMapEnvironment() *MapEnvironment {
	return &MapEnvironment{values: make(map[string]string)}
}

// NewProcessEnvironment creates an Environment whose reads fall back to the
// process environment. Writes still land only in the mapping.
func NewProcessEnvironment() *MapEnvironment {
	return &MapEnvironment{values: make(map[string]string), ambient: os.Getenv}
}

func (e *MapEnvironment) Get(key string) string {
	if value, ok := e.values[key]; ok {
		return value
	}
	if e.ambient != nil {
		return e.ambient(key)
	}
	return ""
}

func (e *MapEnvironment) Set(key, value string) {
	e.values[key] = value
}

// Values returns a copy of everything written.
func (e *MapEnvironment) Values() map[string]string {
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Entries returns the written values as sorted KEY=value strings, ready to
// append to a command's environment.
func (e *MapEnvironment) Entries() []string {
	entries := make([]string, 0, len(e.values))
	for k, v := range e.values {
		entries = append(entries, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(entries)
	return entries
}
