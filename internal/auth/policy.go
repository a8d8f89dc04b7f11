package auth

import (
	"fmt"
	"strings"

	"github.com/praceando/event-platform/internal/domain"
)

// Wildcard marks a trailing path segment matching any suffix, including the
// bare prefix itself ("/api/evento/**" covers both "/api/evento" and
// "/api/evento/find/7").
const Wildcard = "**"

// Rule declares authorization for one path pattern. Public rules admit
// requests with no principal at all; protected rules enumerate the role set
// allowed through. A protected rule with an empty role set denies everyone.
type Rule struct {
	Pattern string
	Public  bool
	Roles   []domain.RoleName
}

// Decision is the classification of one request path.
type Decision struct {
	Public  bool
	Matched bool
	Allowed map[domain.RoleName]struct{}
}

// Allows reports whether the decision's role set admits the given role.
func (d Decision) Allows(role domain.RoleName) bool {
	_, ok := d.Allowed[role]
	return ok
}

type compiledRule struct {
	segments []string
	wildcard bool
	public   bool
	allowed  map[domain.RoleName]struct{}
}

// Policy is the immutable, process-wide route policy table. Matching is by
// specificity, not declaration order: the rule with the longest literal
// segment prefix wins, and an exact rule beats a wildcard rule over the same
// prefix. Unmatched paths are denied.
type Policy struct {
	rules []compiledRule
}

// NewPolicy compiles the rule table. Patterns must be absolute and may carry
// at most one wildcard, as the final segment.
func NewPolicy(rules []Rule) (*Policy, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("pattern %q must start with /", r.Pattern)
		}
		segments := splitPath(r.Pattern)
		wildcard := false
		for i, seg := range segments {
			if seg != Wildcard {
				continue
			}
			if i != len(segments)-1 {
				return nil, fmt.Errorf("pattern %q: wildcard allowed only as final segment", r.Pattern)
			}
			wildcard = true
		}
		if wildcard {
			segments = segments[:len(segments)-1]
		}
		allowed := make(map[domain.RoleName]struct{}, len(r.Roles))
		for _, role := range r.Roles {
			if !role.Valid() {
				return nil, fmt.Errorf("pattern %q: unknown role %q", r.Pattern, role)
			}
			allowed[role] = struct{}{}
		}
		compiled = append(compiled, compiledRule{
			segments: segments,
			wildcard: wildcard,
			public:   r.Public,
			allowed:  allowed,
		})
	}
	return &Policy{rules: compiled}, nil
}

// MustPolicy compiles the rule table or panics; for static tables only.
func MustPolicy(rules []Rule) *Policy {
	p, err := NewPolicy(rules)
	if err != nil {
		panic(err)
	}
	return p
}

// Classify resolves the request path to exactly one decision. It never
// fails: paths matching no rule come back unmatched with an empty role set,
// which downstream enforcement treats as protected and denies.
func (p *Policy) Classify(path string) Decision {
	segments := splitPath(path)

	best := -1
	bestLiterals := -1
	for i, rule := range p.rules {
		if !rule.match(segments) {
			continue
		}
		literals := len(rule.segments)
		if literals > bestLiterals {
			best, bestLiterals = i, literals
			continue
		}
		// same literal depth: exact beats wildcard, first declared wins among equals
		if literals == bestLiterals && p.rules[best].wildcard && !rule.wildcard {
			best = i
		}
	}
	if best < 0 {
		return Decision{}
	}
	rule := p.rules[best]
	return Decision{Public: rule.public, Matched: true, Allowed: rule.allowed}
}

func (r compiledRule) match(segments []string) bool {
	if r.wildcard {
		if len(segments) < len(r.segments) {
			return false
		}
	} else if len(segments) != len(r.segments) {
		return false
	}
	for i, seg := range r.segments {
		if segments[i] != seg {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
