package domain

import "strings"

// Content field names in the order the only-one rejection reports them.
var exclusiveFields = []string{"text", "image", "video", "audio", "document"}

// Order the at-least-one rejection reports them; kept distinct because
// the rendered tuples are part of the wire format.
var atLeastFields = []string{"image", "video", "text", "audio", "document"}

// Message is the validated, canonical send-message request. It is built
// once per inbound request from untrusted JSON, immutable after Validate
// succeeds, and discarded when the outbound call finishes.
//
// Content fields are pointers so an explicitly submitted empty string is
// distinguishable from an absent or null field: "" counts as present for
// the content gates and then fails its own min-length rule.
type Message struct {
	Text     *string `json:"text,omitempty"`
	Image    *string `json:"image,omitempty"`
	Video    *string `json:"video,omitempty"`
	Audio    *string `json:"audio,omitempty"`
	Document *string `json:"document,omitempty"`

	Phone    string `json:"phone"`
	Token    string `json:"token"`
	Instance string `json:"instance"`

	// Filename is derived during validation for image/video/document
	// payloads. A client-supplied value is ignored.
	Filename string `json:"filename,omitempty"`
}

// contentValues returns the submitted content values in the given field
// order, nil standing in for fields the caller left out.
func (m *Message) contentValues(order []string) []*string {
	byName := map[string]*string{
		"text":     m.Text,
		"image":    m.Image,
		"video":    m.Video,
		"audio":    m.Audio,
		"document": m.Document,
	}

	values := make([]*string, 0, len(order))
	for _, name := range order {
		values = append(values, byName[name])
	}
	return values
}

// MediaSource returns the image, video or document payload, whichever is
// set, in that priority order, or nil when none is.
func (m *Message) MediaSource() *string {
	switch {
	case m.Image != nil:
		return m.Image
	case m.Video != nil:
		return m.Video
	case m.Document != nil:
		return m.Document
	default:
		return nil
	}
}

// Validate runs the full validation protocol and returns every failure
// in order, or nil when the message is well-formed. On success the
// derived Filename is populated for media payloads.
//
// The protocol is two-phased: the mutual-exclusion and at-least-one gates
// run first and, when one fires, nothing else is checked. Otherwise the
// per-field rules all run and their failures accumulate, and filename
// derivation contributes independently for media fields that passed their
// own checks.
func (m *Message) Validate() []Error {
	m.Filename = ""

	set := 0
	for _, v := range m.contentValues(exclusiveFields) {
		if v != nil {
			set++
		}
	}

	if set > 1 {
		return []Error{NewOnlyOneOfThemError(exclusiveFields, m.contentValues(exclusiveFields))}
	}
	if set == 0 {
		return []Error{NewAtLeastOneOfThemError(atLeastFields, m.contentValues(atLeastFields))}
	}

	var errs []Error

	appendViolations := func(loc string, violations []Violation) {
		for _, v := range violations {
			errs = append(errs, Error{Loc: loc, Msg: v.Message()})
		}
	}

	appendViolations("phone", PhoneRule.Check(m.Phone))
	appendViolations("token", NonEmptyRule.Check(m.Token))
	appendViolations("instance", NonEmptyRule.Check(m.Instance))

	contentOK := true
	switch {
	case m.Text != nil:
		violations := MessageBodyRule.Check(*m.Text)
		contentOK = len(violations) == 0
		appendViolations("text", violations)
	case m.Image != nil:
		violations := CheckURLOrBase64(*m.Image, Base64ImageRule)
		contentOK = len(violations) == 0
		appendViolations("image", violations)
	case m.Video != nil:
		violations := CheckURLOrBase64(*m.Video, Base64VideoRule)
		contentOK = len(violations) == 0
		appendViolations("video", violations)
	case m.Audio != nil:
		violations := CheckURLOrBase64(*m.Audio, Base64AudioRule)
		contentOK = len(violations) == 0
		appendViolations("audio", violations)
	case m.Document != nil:
		violations := CheckURLOrBase64(*m.Document, Base64DocumentRule)
		contentOK = len(violations) == 0
		appendViolations("document", violations)
	}

	if media := m.MediaSource(); media != nil && contentOK {
		filename := deriveFilename(*media)
		if filename == "" {
			errs = append(errs, NewBadFilenameError())
		} else {
			m.Filename = filename
		}
	}

	return errs
}

// deriveFilename picks the derivation strategy by payload shape.
func deriveFilename(payload string) string {
	if strings.HasPrefix(payload, "data:") {
		return FilenameFromBase64(payload)
	}
	return FilenameFromURL(payload)
}
