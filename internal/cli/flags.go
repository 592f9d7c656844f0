package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value that only accepts a fixed set of strings,
// so invalid learner types and stress levels fail at flag parse time.
type enumValue struct {
	value   *string
	allowed map[string]bool
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, target *string, allowed map[string]bool) *enumValue {
	*target = def
	return &enumValue{value: target, allowed: allowed}
}

func (e *enumValue) Set(s string) error {
	if !e.allowed[s] {
		keys := make([]string, 0, len(e.allowed))
		for k := range e.allowed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("must be one of: %s", strings.Join(keys, ", "))
	}
	*e.value = s
	return nil
}

func (e *enumValue) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumValue) Type() string { return "string" }
