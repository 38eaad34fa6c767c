package types

import (
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ParseError classifies why a raw uri was rejected.
type ParseError uint8

const (
	ErrEmptyURI ParseError = iota + 1
	ErrWhitespace
	ErrMissingHost
	ErrMalformedURI
	ErrMissingContentPath
)

func (e ParseError) Error() string {
	switch e {
	case ErrEmptyURI:
		return "empty uri"
	case ErrWhitespace:
		return "uri contains whitespace"
	case ErrMissingHost:
		return "missing host after scheme"
	case ErrMissingContentPath:
		return "contents uri has no content path"
	default:
		return "malformed uri"
	}
}

type parseState uint8

const (
	stateSchemeOrAuthority parseState = iota
	stateAuthority
	statePort
	statePath
	stateQuery
	stateFragment
)

// rawURI holds the components found by the scanner before normalization.
type rawURI struct {
	scheme    string
	hasScheme bool
	userinfo  string
	host      string
	port      string
	hasPort   bool
	path      string
	query     string
	fragment  string
}

// ParseURI parses a concrete uri for the given claim type.
func ParseURI(raw string, claim ClaimType) (URIPart, error) {
	return parse(raw, claim, false)
}

// ParsePattern parses a uri that may carry '*' wildcards in its scheme,
// sub-domain, host or path.
func ParsePattern(raw string, claim ClaimType) (URIPart, error) {
	return parse(raw, claim, true)
}

func parse(raw string, claim ClaimType, wildcard bool) (URIPart, error) {
	r, err := scan(raw, wildcard)
	if err != nil {
		return URIPart{}, err
	}
	return r.normalize(claim, wildcard)
}

// scan walks the input one byte at a time, splitting it into scheme,
// authority (userinfo, host, port), path, query and fragment.
func scan(raw string, wildcard bool) (rawURI, error) {
	var r rawURI
	if len(raw) == 0 {
		return r, ErrEmptyURI
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if isSpace(c) {
			return r, ErrWhitespace
		}
		if c < 0x20 || c >= 0x7f {
			return r, ErrMalformedURI
		}
	}

	state := stateSchemeOrAuthority
	mark := 0
	hostMark := 0
	sawAt := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch state {
		case stateSchemeOrAuthority:
			switch {
			case c == ':' && strings.HasPrefix(raw[i:], "://"):
				if !validScheme(raw[:i], wildcard) {
					return r, ErrMalformedURI
				}
				r.scheme = strings.ToLower(raw[:i])
				r.hasScheme = true
				i += 2
				mark, hostMark = i+1, i+1
				state = stateAuthority
			case c == ':' || c == '@' || c == '/' || c == '?' || c == '#':
				state = stateAuthority
				i--
			case isAuthorityChar(c, wildcard):
			default:
				return r, ErrMalformedURI
			}

		case stateAuthority:
			switch {
			case c == '@':
				if sawAt {
					return r, ErrMalformedURI
				}
				sawAt = true
				r.userinfo = raw[mark:i]
				mark, hostMark = i+1, i+1
			case c == ':':
				r.host = raw[mark:i]
				mark = i + 1
				r.hasPort = true
				state = statePort
			case c == '/':
				r.host = raw[mark:i]
				mark = i
				state = statePath
			case c == '?':
				r.host = raw[mark:i]
				mark = i + 1
				state = stateQuery
			case c == '#':
				r.host = raw[mark:i]
				mark = i + 1
				state = stateFragment
			case isAuthorityChar(c, wildcard):
			default:
				return r, ErrMalformedURI
			}

		case statePort:
			switch {
			case c == '@' && !sawAt:
				// what looked like host:port was user:password
				sawAt = true
				r.userinfo = raw[hostMark:i]
				r.host, r.hasPort = "", false
				mark, hostMark = i+1, i+1
				state = stateAuthority
			case c == '/':
				r.port = raw[mark:i]
				mark = i
				state = statePath
			case c == '?':
				r.port = raw[mark:i]
				mark = i + 1
				state = stateQuery
			case c == '#':
				r.port = raw[mark:i]
				mark = i + 1
				state = stateFragment
			case c >= '0' && c <= '9':
			case isUserinfoChar(c):
				// only valid if an '@' follows
			default:
				return r, ErrMalformedURI
			}

		case statePath:
			switch {
			case c == '?':
				r.path = raw[mark:i]
				mark = i + 1
				state = stateQuery
			case c == '#':
				r.path = raw[mark:i]
				mark = i + 1
				state = stateFragment
			case c == '/' && i > mark && raw[i-1] == '/':
				return r, ErrMalformedURI
			case c == '%':
				if !validPercent(raw, i) {
					return r, ErrMalformedURI
				}
			case c == '/' || isPathChar(c):
			default:
				return r, ErrMalformedURI
			}

		case stateQuery:
			switch {
			case c == '#':
				r.query = raw[mark:i]
				mark = i + 1
				state = stateFragment
			case c == '%':
				if !validPercent(raw, i) {
					return r, ErrMalformedURI
				}
			case c == '/' || c == '?' || isPathChar(c):
			default:
				return r, ErrMalformedURI
			}

		case stateFragment:
			switch {
			case c == '%':
				if !validPercent(raw, i) {
					return r, ErrMalformedURI
				}
			case c == '/' || c == '?' || isPathChar(c):
			default:
				return r, ErrMalformedURI
			}
		}
	}

	switch state {
	case stateSchemeOrAuthority, stateAuthority:
		r.host = raw[mark:]
	case statePort:
		r.port = raw[mark:]
	case statePath:
		r.path = raw[mark:]
	case stateQuery:
		r.query = raw[mark:]
	case stateFragment:
		r.fragment = raw[mark:]
	}

	if r.host == "" {
		if r.hasScheme {
			return r, ErrMissingHost
		}
		return r, ErrMalformedURI
	}
	if !validHost(r.host, wildcard) || !validUserinfo(r.userinfo) {
		return r, ErrMalformedURI
	}
	if r.hasPort && !validPort(r.port) {
		return r, ErrMalformedURI
	}
	return r, nil
}

// normalize maps scanned components onto a URIPart. Userinfo, port, query
// and fragment do not take part in ownership and are dropped.
func (r rawURI) normalize(claim ClaimType, wildcard bool) (URIPart, error) {
	part := URIPart{Scheme: normalizeScheme(r.scheme, r.hasScheme)}

	path := strings.TrimRight(r.path, "/")
	if path != "" {
		part.Path = strPtr(path)
	}

	host := strings.ToLower(r.host)
	if claim.IsContents() {
		// the host is only a namespace; a concrete contents uri names a path
		if part.Path == nil && !wildcard {
			return URIPart{}, ErrMissingContentPath
		}
		part.Host = strPtr(host)
		return part, nil
	}

	sub, apex := splitHost(host, wildcard)
	if sub == "" {
		sub = CanonicalSubDomain
	}
	part.SubDomain = strPtr(sub)
	part.Host = strPtr(apex)
	return part, nil
}

func normalizeScheme(scheme string, present bool) string {
	switch {
	case !present, scheme == "http", scheme == "https":
		return DefaultScheme
	case scheme == "*":
		return WildcardScheme
	default:
		return scheme + "://"
	}
}

// splitHost separates a host into its sub-domain (with trailing dot) and its
// registrable domain. IP literals, single labels and bare public suffixes are
// returned whole.
func splitHost(host string, wildcard bool) (sub, apex string) {
	if net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return "", host
	}
	apex, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", host
	}
	if wildcard && strings.ContainsRune(apex, Wildcard) {
		// a wildcard registrable label cannot be split further
		return "", host
	}
	return host[:len(host)-len(apex)], apex
}

func validScheme(s string, wildcard bool) bool {
	if s == "" {
		return false
	}
	if wildcard && s == "*" {
		return true
	}
	if !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func validHost(host string, wildcard bool) bool {
	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case isAlpha(c), isDigit(c), c == '-', c == '_':
			case c == Wildcard && wildcard:
			default:
				return false
			}
		}
	}
	return true
}

func validUserinfo(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isUserinfoChar(s[i]) {
			return false
		}
	}
	return true
}

func validPort(s string) bool {
	if s == "" || len(s) > 5 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n <= 65535
}

func validPercent(raw string, i int) bool {
	return i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2])
}

func isAuthorityChar(c byte, wildcard bool) bool {
	return isUserinfoChar(c) || (wildcard && c == Wildcard)
}

func isUserinfoChar(c byte) bool {
	return isUnreserved(c) || isSubDelim(c) || c == '%' || c == ':'
}

func isPathChar(c byte) bool {
	return isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@'
}

func isUnreserved(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

func isSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
