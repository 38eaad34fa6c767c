package types

import "strings"

// AnyUserAgent matches every user agent in a rule
const AnyUserAgent = "*"

// AppliesTo reports whether the rule covers userAgent
func (r Rule) AppliesTo(userAgent string) bool {
	for _, ua := range r.UserAgents {
		if ua == AnyUserAgent || strings.EqualFold(ua, userAgent) {
			return true
		}
	}
	return false
}

// MatchAccessRule returns the first rule whose path pattern matches target
// and which applies to userAgent. Rules with unparsable patterns are skipped.
func (d URAuthDoc) MatchAccessRule(target URIPart, claim ClaimType, userAgent string) (AccessRule, Rule, bool) {
	for _, ar := range d.AccessRules {
		pattern, err := ParsePattern(ar.Path, claim)
		if err != nil || !target.Matches(pattern) {
			continue
		}
		for _, r := range ar.Rules {
			if r.AppliesTo(userAgent) {
				return ar, r, true
			}
		}
	}
	return AccessRule{}, Rule{}, false
}
