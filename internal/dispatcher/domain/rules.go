package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"unicode/utf8"
)

// ViolationKind classifies a single constraint failure.
type ViolationKind int

const (
	TooShort ViolationKind = iota
	TooLong
	PatternMismatch
	BadURL
)

// Violation is one failed check against a Rule. A single value can
// violate several constraints at once; callers get all of them.
type Violation struct {
	Kind    ViolationKind
	Limit   int
	Pattern string
}

// Message renders the violation in the wire format callers parse.
func (v Violation) Message() string {
	switch v.Kind {
	case TooShort:
		return fmt.Sprintf("ensure this value has at least %d characters", v.Limit)
	case TooLong:
		return fmt.Sprintf("ensure this value has at most %d characters", v.Limit)
	case PatternMismatch:
		return fmt.Sprintf("string does not match regex \"%s\"", v.Pattern)
	case BadURL:
		return "invalid or missing URL scheme"
	default:
		return "invalid value"
	}
}

// Rule is a constrained-string descriptor: bounds plus an optional
// pattern. The former type hierarchy behind these constraints was really
// one base rule with a parameter swapped per field, so it is plain data
// here.
type Rule struct {
	MinLen  int
	MaxLen  int // 0 means unbounded
	Pattern *regexp.Regexp
}

// Check runs every constraint independently and returns all violations.
// The length bounds count characters, not bytes, so multi-byte text is
// measured the way the limits are documented.
func (r Rule) Check(value string) []Violation {
	var violations []Violation

	length := utf8.RuneCountInString(value)
	if length < r.MinLen {
		violations = append(violations, Violation{Kind: TooShort, Limit: r.MinLen})
	}
	if r.MaxLen > 0 && length > r.MaxLen {
		violations = append(violations, Violation{Kind: TooLong, Limit: r.MaxLen})
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		violations = append(violations, Violation{Kind: PatternMismatch, Pattern: r.Pattern.String()})
	}

	return violations
}

// Matches reports whether the value satisfies every constraint.
func (r Rule) Matches(value string) bool {
	return len(r.Check(value)) == 0
}

// Base-64 asset patterns. Each admits a data URL with the MIME classes
// Chat API accepts for that slot; Base64FileRule is the broader check the
// provider request layer applies to file bodies.
var (
	base64ImagePattern = regexp.MustCompile(
		`^data:image/(jpeg|png|gif|webp);base64,[A-Za-z0-9+/]+={0,2}$`)
	base64VideoPattern = regexp.MustCompile(
		`^data:video/(mp4|mpeg|quicktime|3gpp);base64,[A-Za-z0-9+/]+={0,2}$`)
	// Chat API only plays voice notes encoded as OGG Opus.
	base64AudioPattern = regexp.MustCompile(
		`^data:audio/ogg(;codecs=opus)?;base64,[A-Za-z0-9+/]+={0,2}$`)
	base64DocumentPattern = regexp.MustCompile(
		`^data:application/(pdf|msword|vnd\.openxmlformats-officedocument\.wordprocessingml\.document|vnd\.oasis\.opendocument\.text);base64,[A-Za-z0-9+/]+={0,2}$`)
	base64FilePattern = regexp.MustCompile(
		`^data:[a-z]+/[-\w.+]+(;codecs=[-\w.+]+)?;base64,[A-Za-z0-9+/]+={0,2}$`)

	phonePattern = regexp.MustCompile(`^\d+$`)
)

// Named rules for each constrained field.
var (
	PhoneRule       = Rule{MinLen: 9, MaxLen: 13, Pattern: phonePattern}
	NonEmptyRule    = Rule{MinLen: 1}
	MessageBodyRule = Rule{MinLen: 1, MaxLen: 20000}
	FilenameRule    = Rule{MinLen: 1, MaxLen: 300}

	Base64ImageRule    = Rule{MinLen: 1, MaxLen: 150000, Pattern: base64ImagePattern}
	Base64VideoRule    = Rule{MinLen: 1, MaxLen: 150000, Pattern: base64VideoPattern}
	Base64AudioRule    = Rule{MinLen: 1, MaxLen: 10000, Pattern: base64AudioPattern}
	Base64DocumentRule = Rule{MinLen: 1, MaxLen: 150000, Pattern: base64DocumentPattern}
	Base64FileRule     = Rule{MinLen: 1, MaxLen: 150000, Pattern: base64FilePattern}
)

// IsHTTPURL reports whether the value is a well-formed absolute http(s)
// URL with a host.
func IsHTTPURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// CheckURLOrBase64 validates a field that accepts either an HTTP(S) URL
// or a base-64 payload. When the value is neither, the failures of both
// sub-checks are returned together rather than short-circuited.
func CheckURLOrBase64(value string, base64Rule Rule) []Violation {
	if IsHTTPURL(value) {
		return nil
	}

	base64Violations := base64Rule.Check(value)
	if len(base64Violations) == 0 {
		return nil
	}

	return append(base64Violations, Violation{Kind: BadURL})
}
