package types

import "strings"

const pathSeparator = "/"

// IsRoot reports whether part is the top-level claimable unit for claim.
// A domain root is the apex with no path; a contents root has a path with
// exactly one separator.
func IsRoot(part URIPart, claim ClaimType) bool {
	if claim.IsContents() {
		return part.Path != nil && strings.Count(*part.Path, pathSeparator) == 1
	}
	return part.SubDomain != nil && *part.SubDomain == CanonicalSubDomain && part.Path == nil
}

// Root returns the scheme (when not the default) followed by the host.
func (p URIPart) Root() (string, bool) {
	if p.Host == nil {
		return "", false
	}
	if p.Scheme == DefaultScheme {
		return *p.Host, true
	}
	return p.Scheme + *p.Host, true
}

// RootPart returns the root claim unit above part. For contents the root
// keeps the first path segment.
func RootPart(part URIPart, claim ClaimType) URIPart {
	root := URIPart{Scheme: part.Scheme, Host: part.Host}
	if claim.IsContents() {
		if part.Path != nil {
			if first, ok := firstSegment(*part.Path); ok {
				root.Path = strPtr(first)
			}
		}
		return root
	}
	root.SubDomain = strPtr(CanonicalSubDomain)
	return root
}

// RootURI returns the canonical form of the root claim unit above part.
func RootURI(part URIPart, claim ClaimType) string {
	return RootPart(part, claim).String()
}

// ParentURIs parses raw and lists its ancestors from nearest to farthest.
// Path segments are removed first, then sub-domain labels from the left.
// A root uri yields itself.
func ParentURIs(raw string, claim ClaimType) ([]string, error) {
	part, err := ParseURI(raw, claim)
	if err != nil {
		return nil, err
	}
	return Ancestors(part, claim), nil
}

// Ancestors is ParentURIs over an already parsed uri.
func Ancestors(part URIPart, claim ClaimType) []string {
	if IsRoot(part, claim) {
		return []string{part.String()}
	}

	var parents []string
	cur := part
	if claim.IsContents() {
		for cur.Path != nil && strings.Count(*cur.Path, pathSeparator) > 1 {
			cur.Path = parentPath(*cur.Path)
			parents = append(parents, cur.String())
		}
		return parents
	}

	for cur.Path != nil {
		cur.Path = parentPath(*cur.Path)
		parents = append(parents, cur.String())
	}
	for cur.SubDomain != nil && *cur.SubDomain != CanonicalSubDomain {
		cur.SubDomain = parentSubDomain(*cur.SubDomain)
		parents = append(parents, cur.String())
	}
	return parents
}

// parentPath drops the last segment; nil once no segment remains.
func parentPath(path string) *string {
	idx := strings.LastIndex(path, pathSeparator)
	if idx <= 0 {
		return nil
	}
	return strPtr(path[:idx])
}

// parentSubDomain drops the left-most label of a dotted sub-domain.
func parentSubDomain(sub string) *string {
	idx := strings.Index(sub, ".")
	if idx < 0 || idx == len(sub)-1 {
		return strPtr(CanonicalSubDomain)
	}
	return strPtr(sub[idx+1:])
}

func firstSegment(path string) (string, bool) {
	trimmed := strings.TrimPrefix(path, pathSeparator)
	if trimmed == "" {
		return "", false
	}
	if idx := strings.Index(trimmed, pathSeparator); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return pathSeparator + trimmed, true
}
