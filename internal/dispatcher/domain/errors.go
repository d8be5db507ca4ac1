package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Delimiter joins rendered errors into the single errorMessage string the
// gateway returns. It must never occur inside an individual message.
const Delimiter = ",,, "

// errorPattern is the grammar a rendered error must match to be parsed
// back: the location is either a bare identifier or a parenthesized,
// quoted, comma-separated tuple of identifiers.
var errorPattern = regexp.MustCompile(`^In ((\w+)|(\('\w+'(,+ '\w+')*\))):\s(.*)`)

// Error is one structured validation failure: where it happened and what
// went wrong.
type Error struct {
	Loc string
	Msg string
}

func (e Error) String() string {
	return fmt.Sprintf("In %s: %s", e.Loc, e.Msg)
}

// FormatErrors renders an ordered error list into one delimited string.
func FormatErrors(errs []Error) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, Delimiter)
}

// BadMatchInvalidLocError reports a segment that does not follow the
// rendered-error grammar.
type BadMatchInvalidLocError struct {
	ErrorStr string
}

func (e *BadMatchInvalidLocError) Error() string {
	return fmt.Sprintf("%s does not match regex %s", e.ErrorStr, errorPattern.String())
}

// ParseErrors is the inverse of FormatErrors: it splits the rendered
// string on the delimiter and reconstructs each structured error.
// ParseErrors(FormatErrors(errs)) == errs for any well-formed list.
func ParseErrors(rendered string) ([]Error, error) {
	var parsed []Error

	for _, segment := range strings.Split(rendered, Delimiter) {
		match := errorPattern.FindStringSubmatch(segment)
		if match == nil {
			return nil, &BadMatchInvalidLocError{ErrorStr: segment}
		}

		loc := match[2]
		if loc == "" {
			loc = match[3]
		}
		parsed = append(parsed, Error{Loc: loc, Msg: match[5]})
	}

	return parsed, nil
}

// rootLoc is the location used for whole-request failures, kept from the
// wire format the gateway has always produced.
const rootLoc = "__root__"

// NewOnlyOneOfThemError builds the rejection for a request that sets more
// than one content field. It names all five fields and all five submitted
// values, not just the offending pair.
func NewOnlyOneOfThemError(fields []string, values []*string) Error {
	return Error{
		Loc: rootLoc,
		Msg: fmt.Sprintf(
			"Only ONE of these values %s must be properly set, got: %s",
			tupleOfNames(fields), tupleOfValues(values),
		),
	}
}

// NewAtLeastOneOfThemError builds the rejection for a request that sets no
// content field at all.
func NewAtLeastOneOfThemError(fields []string, values []*string) Error {
	return Error{
		Loc: rootLoc,
		Msg: fmt.Sprintf(
			"At least ONE of these values %s must be properly set, got: %s",
			tupleOfNames(fields), tupleOfValues(values),
		),
	}
}

// NewBadFilenameError reports an asset whose filename could not be
// derived from its URL or base-64 payload.
func NewBadFilenameError() Error {
	return Error{
		Loc: "filename",
		Msg: "Filename extracted from base-64/http URL asset not recognized",
	}
}

// ErrConnectionTimeout is returned when the outbound call to Chat API
// times out while connecting. Transport maps it to a 504.
var ErrConnectionTimeout = errors.New(
	"Tried to make POST request to Chat API, but received a connection time out")

// tupleOfNames renders field names as a quoted tuple, e.g.
// ('text', 'image', 'video', 'audio', 'document'). The shape is part of
// the documented error grammar.
func tupleOfNames(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, "'"+n+"'")
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

// tupleOfValues renders submitted values the same way, with None standing
// in for fields the caller left unset.
func tupleOfValues(values []*string) string {
	rendered := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			rendered = append(rendered, "None")
		} else {
			rendered = append(rendered, "'"+*v+"'")
		}
	}
	return "(" + strings.Join(rendered, ", ") + ")"
}
