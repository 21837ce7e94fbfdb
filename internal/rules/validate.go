package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks semantic constraints of a Config.
// Ascending modes need 0 ≤ exact ≤ partial ≤ close; overlap needs the
// reverse ordering. Violations are collected and reported together.
func Validate(cfg Config) error {
	var errs []string

	names := make([]string, 0, len(cfg.Attributes))
	for name := range cfg.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := cfg.Attributes[name]
		switch r.Mode {
		case Absolute, Relative, CalendarYears:
			if r.Exact < 0 {
				errs = append(errs, fmt.Sprintf("%s: exact must be >= 0", name))
			}
			if !(r.Exact <= r.Partial && r.Partial <= r.Close) {
				errs = append(errs, fmt.Sprintf("%s: bands must ascend (exact <= partial <= close)", name))
			}
		case SetOverlap:
			if r.Close < 0 {
				errs = append(errs, fmt.Sprintf("%s: close must be >= 0", name))
			}
			if !(r.Exact >= r.Partial && r.Partial >= r.Close) {
				errs = append(errs, fmt.Sprintf("%s: overlap bands must descend (exact >= partial >= close)", name))
			}
		case ExactText:
			// no bands
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown mode %q", name, r.Mode))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("rules validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
