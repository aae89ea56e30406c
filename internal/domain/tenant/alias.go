package tenant

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
)

// ReservedPaths are first path segments owned by the application router.
var ReservedPaths = map[string]bool{
	"admin":     true,
	"portfolio": true,
	"u":         true,
	"api":       true,
	"assets":    true,
}

// MinUsernameLength is the shortest accepted username.
const MinUsernameLength = 3

// MaxUsernameKeyLength bounds a username index key.
const MaxUsernameKeyLength = 255

// userIDMinLength is exclusive: identifiers must be longer than this.
const userIDMinLength = 20

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	userIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// Underscore is escaped first so that every "_" in an encoded segment starts
// a token. That keeps DecodeDomain exact for inputs that already contain
// token-like text such as "_DOT_".
type escape struct{ char, token string }

var domainEscapes = []escape{
	{"_", "_UNDERSCORE_"},
	{".", "_DOT_"},
	{"#", "_HASH_"},
	{"$", "_DOLLAR_"},
	{"[", "_LBRACKET_"},
	{"]", "_RBRACKET_"},
}

// IsDomainPath reports whether a route segment should be treated as a domain.
func IsDomainPath(s string) bool {
	return strings.Contains(s, ".") && !ReservedPaths[strings.ToLower(s)] && utf8.RuneCountInString(s) > 3
}

// NormalizeDomain strips a leading scheme, a leading "www." and one trailing
// slash, then lowercases the remainder.
func NormalizeDomain(d string) string {
	d = strings.TrimSpace(d)
	if strings.HasPrefix(d, "https://") {
		d = d[len("https://"):]
	} else if strings.HasPrefix(d, "http://") {
		d = d[len("http://"):]
	}
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimSuffix(d, "/")
	return strings.ToLower(d)
}

// EncodeDomain makes a domain safe to use as a single store path segment.
func EncodeDomain(d string) string {
	for _, e := range domainEscapes {
		d = strings.ReplaceAll(d, e.char, e.token)
	}
	return d
}

// DecodeDomain reverses EncodeDomain. Unknown "_" sequences are kept as-is.
func DecodeDomain(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '_' {
			if e, ok := matchEscape(s[i:]); ok {
				b.WriteString(e.char)
				i += len(e.token)
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func matchEscape(s string) (escape, bool) {
	for _, e := range domainEscapes {
		if strings.HasPrefix(s, e.token) {
			return e, true
		}
	}
	return escape{}, false
}

// IsCustomHost reports whether the request host is an owner's domain rather
// than the primary host or a local development address.
func IsCustomHost(host, primaryHost string) bool {
	if host == "" {
		return false
	}
	return host != primaryHost && host != "127.0.0.1" && !strings.Contains(host, "localhost")
}

// LooksLikeUserID reports whether a route identifier is a canonical user ID
// rather than a username.
func LooksLikeUserID(s string) bool {
	return len(s) > userIDMinLength && userIDPattern.MatchString(s)
}

// NormalizeUsername trims and lowercases a username.
func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// IsUsernameKey reports whether a normalized username can address a
// usernames/<name> index entry: non-empty, a single path segment without
// whitespace or control characters, and at most MaxUsernameKeyLength runes.
// It is looser than ValidateUsername, which only gates the settings form.
func IsUsernameKey(u string) bool {
	if u == "" || utf8.RuneCountInString(u) > MaxUsernameKeyLength {
		return false
	}
	return !strings.ContainsFunc(u, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// ValidateUsername checks a normalized username.
func ValidateUsername(u string) error {
	if len(u) < MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", domain.ErrValidation, MinUsernameLength)
	}
	if !usernamePattern.MatchString(u) {
		return fmt.Errorf("%w: username may only contain lowercase letters, numbers and hyphens", domain.ErrValidation)
	}
	if ReservedPaths[u] {
		return fmt.Errorf("%w: username %q is reserved", domain.ErrValidation, u)
	}
	return nil
}

// ValidateCustomDomain checks a normalized custom domain.
func ValidateCustomDomain(d string) error {
	if strings.ContainsAny(d, " \t/") {
		return fmt.Errorf("%w: custom domain must be a bare host name", domain.ErrValidation)
	}
	if !IsDomainPath(d) {
		return fmt.Errorf("%w: %q is not a valid domain", domain.ErrValidation, d)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(d); err != nil {
		return fmt.Errorf("%w: %q is not a registrable domain", domain.ErrValidation, d)
	}
	return nil
}
