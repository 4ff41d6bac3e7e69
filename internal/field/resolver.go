package field

import "strings"

// Binding maps each resolved role to the column name that satisfies it.
// Roles that no column satisfied are absent.
type Binding map[Role]string

// Column returns the bound column for a role, or "" when unresolved.
func (b Binding) Column(role Role) string {
	return b[role]
}

// Has reports whether a role resolved.
func (b Binding) Has(role Role) bool {
	_, ok := b[role]
	return ok
}

// Strings returns the binding with plain-string keys for serialization.
func (b Binding) Strings() map[string]string {
	out := make(map[string]string, len(b))
	for role, col := range b {
		out[string(role)] = col
	}
	return out
}

// Resolve maps free-form column headers to semantic roles. It is a pure
// function of its inputs: two scans over the columns in order (primary
// rules, then fallback rules), first matching column binds, and a role is
// never rebound once filled.
func Resolve(columns []string, specs []RoleSpec) Binding {
	binding := make(Binding)

	// Pass 1: primary rules.
	for _, col := range columns {
		folded := strings.ToLower(col)
		for _, spec := range specs {
			if _, bound := binding[spec.Role]; bound {
				continue
			}
			if matchesAnyRule(folded, spec.Primary) {
				binding[spec.Role] = col
			}
		}
	}

	// Pass 2: fallback rules for roles still open.
	for _, col := range columns {
		folded := strings.ToLower(col)
		for _, spec := range specs {
			if _, bound := binding[spec.Role]; bound {
				continue
			}
			if matchesAnyRule(folded, spec.Fallback) {
				binding[spec.Role] = col
			}
		}
	}

	return binding
}

// ResolveAll runs Resolve against the full default table.
func ResolveAll(columns []string) Binding {
	return Resolve(columns, DefaultSpecs)
}

func matchesAnyRule(folded string, rules []Rule) bool {
	for _, rule := range rules {
		if matchesRule(folded, rule) {
			return true
		}
	}
	return false
}

// matchesRule requires every clause to match; a clause matches when any of
// its alternatives is a substring of the folded column name.
func matchesRule(folded string, rule Rule) bool {
	if len(rule) == 0 {
		return false
	}
	for _, clause := range rule {
		clauseHit := false
		for _, alt := range clause {
			if strings.Contains(folded, strings.ToLower(alt)) {
				clauseHit = true
				break
			}
		}
		if !clauseHit {
			return false
		}
	}
	return true
}
