// Package excluderules implements a read-only exclude-rule set for a scan.
// It is an injected value, not a global singleton: the caller builds a
// *Rules and passes it in jobqueue.Config.Rules.
package excluderules

import "path/filepath"

// Rule matches either a full path / base-name pair at directory-discovery
// time, or a direct file child's base name during the late-exclude pass.
type Rule struct {
	// Pattern is a filepath.Match-style glob, e.g. "*.bak" or "node_modules".
	Pattern string

	// MatchFullPath, when true, matches Pattern against the entry's full
	// path instead of its base name.
	MatchFullPath bool

	// AppliesToFileChildren marks this rule as eligible for the
	// direct-children late-exclude check.
	AppliesToFileChildren bool
}

// Rules is an ordered list of exclude rules.
type Rules struct {
	rules []Rule
}

// New builds a Rules set from the given rules, in priority order.
func New(rules ...Rule) *Rules {
	return &Rules{rules: rules}
}

// Match reports whether any rule matches this directory entry, tested
// against full path and base name.
func (r *Rules) Match(fullPath, baseName string) bool {
	if r == nil {
		return false
	}
	for _, rule := range r.rules {
		subject := baseName
		if rule.MatchFullPath {
			subject = fullPath
		}
		if ok, _ := filepath.Match(rule.Pattern, subject); ok {
			return true
		}
	}
	return false
}

// MatchDirectChildren reports whether any "applies to file children" rule
// matches any of the given direct child base names.
func (r *Rules) MatchDirectChildren(childNames []string) bool {
	if r == nil {
		return false
	}
	for _, rule := range r.rules {
		if !rule.AppliesToFileChildren {
			continue
		}
		for _, name := range childNames {
			if ok, _ := filepath.Match(rule.Pattern, name); ok {
				return true
			}
		}
	}
	return false
}
