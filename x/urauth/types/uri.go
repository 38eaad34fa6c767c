package types

import (
	"fmt"
	"strings"
)

const (
	// DefaultScheme is assumed when a uri carries no scheme and is omitted from canonical forms
	DefaultScheme = "https://"
	// WildcardScheme matches any scheme in a pattern
	WildcardScheme = "*://"
	// CanonicalSubDomain marks the apex of a domain
	CanonicalSubDomain = "www."
	// Wildcard matches any run of characters in a pattern component
	Wildcard = '*'
)

// ClaimKind selects the parsing and root rules applied to a uri.
type ClaimKind uint8

const (
	ClaimKindDomain ClaimKind = iota
	ClaimKindContents
)

func (k ClaimKind) String() string {
	switch k {
	case ClaimKindDomain:
		return "domain"
	case ClaimKindContents:
		return "contents"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseClaimKind resolves a claim kind by name
func ParseClaimKind(s string) (ClaimKind, error) {
	switch strings.ToLower(s) {
	case "domain":
		return ClaimKindDomain, nil
	case "contents", "content":
		return ClaimKindContents, nil
	default:
		return 0, fmt.Errorf("unknown claim kind: %s", s)
	}
}

// ContentsClaim describes the content being claimed.
type ContentsClaim struct {
	DataSource  string `json:"data_source,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ClaimType is either a domain claim or a contents claim with its metadata.
type ClaimType struct {
	Kind     ClaimKind      `json:"kind"`
	Contents *ContentsClaim `json:"contents,omitempty"`
}

// DomainClaim returns the domain claim type
func DomainClaim() ClaimType {
	return ClaimType{Kind: ClaimKindDomain}
}

// NewContentsClaim returns a contents claim type
func NewContentsClaim(dataSource, name, description string) ClaimType {
	return ClaimType{
		Kind: ClaimKindContents,
		Contents: &ContentsClaim{
			DataSource:  dataSource,
			Name:        name,
			Description: description,
		},
	}
}

// IsContents reports whether the claim is for content
func (c ClaimType) IsContents() bool {
	return c.Kind == ClaimKindContents
}

// Validate checks the claim kind and its payload agree
func (c ClaimType) Validate() error {
	switch c.Kind {
	case ClaimKindDomain:
		if c.Contents != nil {
			return fmt.Errorf("domain claim must not carry contents metadata")
		}
	case ClaimKindContents:
		if c.Contents == nil {
			return fmt.Errorf("contents claim requires contents metadata")
		}
	default:
		return fmt.Errorf("unknown claim kind: %d", c.Kind)
	}
	return nil
}

// URIPart is a parsed uri reduced to the components that carry ownership.
type URIPart struct {
	Scheme    string  `json:"scheme"`
	SubDomain *string `json:"sub_domain,omitempty"`
	Host      *string `json:"host,omitempty"`
	Path      *string `json:"path,omitempty"`
}

// String returns the canonical form of the uri. The default scheme and the
// canonical sub-domain marker are omitted.
func (p URIPart) String() string {
	var b strings.Builder
	if p.Scheme != DefaultScheme {
		b.WriteString(p.Scheme)
	}
	if p.SubDomain != nil && *p.SubDomain != CanonicalSubDomain {
		b.WriteString(*p.SubDomain)
	}
	if p.Host != nil {
		b.WriteString(*p.Host)
	}
	if p.Path != nil {
		b.WriteString(*p.Path)
	}
	return b.String()
}

// Equal compares two parts structurally
func (p URIPart) Equal(o URIPart) bool {
	return p.Scheme == o.Scheme &&
		optionalEqual(p.SubDomain, o.SubDomain) &&
		optionalEqual(p.Host, o.Host) &&
		optionalEqual(p.Path, o.Path)
}

// Matches reports whether p matches pattern. Only the pattern may carry
// wildcards. Comparison is case-insensitive and an absent component only
// matches an absent component.
func (p URIPart) Matches(pattern URIPart) bool {
	if pattern.Scheme != WildcardScheme && !strings.EqualFold(p.Scheme, pattern.Scheme) {
		return false
	}
	return optionalMatch(p.SubDomain, pattern.SubDomain) &&
		optionalMatch(p.Host, pattern.Host) &&
		optionalMatch(p.Path, pattern.Path)
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func optionalMatch(value, pattern *string) bool {
	if value == nil || pattern == nil {
		return value == nil && pattern == nil
	}
	return wildcardMatch(strings.ToLower(*value), strings.ToLower(*pattern))
}

// wildcardMatch is a linear glob matcher where '*' matches any run of bytes.
func wildcardMatch(s, pattern string) bool {
	si, pi := 0, 0
	star, mark := -1, 0
	for si < len(s) {
		switch {
		case pi < len(pattern) && pattern[pi] == Wildcard:
			star, mark = pi, si
			pi++
		case pi < len(pattern) && pattern[pi] == s[si]:
			si++
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == Wildcard {
		pi++
	}
	return pi == len(pattern)
}

func strPtr(s string) *string {
	return &s
}
