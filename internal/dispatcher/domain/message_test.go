package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validBase(t *testing.T) Message {
	t.Helper()
	return Message{
		Phone:    "5492914141794",
		Token:    "asd",
		Instance: "asd",
	}
}

func TestValidate_TextMessage(t *testing.T) {
	msg := validBase(t)
	msg.Text = strPtr("Hello Martin!")

	require.Empty(t, msg.Validate())
	assert.Empty(t, msg.Filename)
}

func TestValidate_MutualExclusion(t *testing.T) {
	// Any two distinct content fields set together get rejected with an
	// error naming all five fields and their submitted values.
	pairs := []struct {
		set func(*Message)
	}{
		{func(m *Message) { m.Text = strPtr("Hello"); m.Image = strPtr("https://example.com/a.png") }},
		{func(m *Message) { m.Image = strPtr("https://example.com/a.png"); m.Video = strPtr("https://example.com/b.mp4") }},
		{func(m *Message) { m.Audio = strPtr("https://example.com/c.opus"); m.Document = strPtr("https://example.com/d.pdf") }},
	}

	for _, tc := range pairs {
		msg := validBase(t)
		tc.set(&msg)

		errs := msg.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "__root__", errs[0].Loc)
		assert.Contains(t, errs[0].Msg,
			"Only ONE of these values ('text', 'image', 'video', 'audio', 'document')")
	}
}

func TestValidate_MutualExclusion_ReportsAllValues(t *testing.T) {
	msg := validBase(t)
	msg.Text = strPtr("Hello")
	msg.Image = strPtr("https://example.com/a.png")

	errs := msg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "got: ('Hello', 'https://example.com/a.png', None, None, None)")
}

func TestValidate_AtLeastOne(t *testing.T) {
	msg := validBase(t)

	errs := msg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "__root__", errs[0].Loc)
	assert.Contains(t, errs[0].Msg,
		"At least ONE of these values ('image', 'video', 'text', 'audio', 'document')")
}

func TestValidate_EmptyTextGetsFieldError(t *testing.T) {
	// An explicit "" is present as far as the gates are concerned, so it
	// reaches the per-field rules and fails min-length there.
	msg := validBase(t)
	msg.Text = strPtr("")

	errs := msg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "text", errs[0].Loc)
	assert.Equal(t, "ensure this value has at least 1 characters", errs[0].Msg)
}

func TestValidate_EmptyContentFieldCountsForExclusion(t *testing.T) {
	msg := validBase(t)
	msg.Text = strPtr("")
	msg.Image = strPtr("https://example.com/a.png")

	errs := msg.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "Only ONE")
	assert.Contains(t, errs[0].Msg, "got: ('', 'https://example.com/a.png', None, None, None)")
}

func TestValidate_FieldErrorsAccumulate(t *testing.T) {
	msg := Message{
		Phone:    "abc",
		Token:    "",
		Instance: "",
		Text:     strPtr("Hello"),
	}

	errs := msg.Validate()

	locs := make([]string, 0, len(errs))
	for _, e := range errs {
		locs = append(locs, e.Loc)
	}
	assert.Equal(t, []string{"phone", "phone", "token", "instance"}, locs)
}

func TestValidate_DerivesFilenameFromURL(t *testing.T) {
	msg := validBase(t)
	msg.Video = strPtr("http://techslides.com/demos/sample-videos/sm%61ll.mp4")

	require.Empty(t, msg.Validate())
	assert.Equal(t, "small.mp4", msg.Filename)
}

func TestValidate_DerivesFilenameFromBase64(t *testing.T) {
	msg := validBase(t)
	msg.Image = strPtr("data:image/jpeg;base64,/9j/4AAQSkZJRg==")

	require.Empty(t, msg.Validate())
	assert.Equal(t, "noname.jpg", msg.Filename)
}

func TestValidate_UnderivableFilenameRejected(t *testing.T) {
	// A well-formed URL whose path has no final segment leaves nothing
	// to derive a filename from.
	msg := validBase(t)
	msg.Document = strPtr("https://example.com/")

	errs := msg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "filename", errs[0].Loc)
	assert.Equal(t, "Filename extracted from base-64/http URL asset not recognized", errs[0].Msg)
}

func TestValidate_AudioNeedsNoFilename(t *testing.T) {
	msg := validBase(t)
	msg.Audio = strPtr("https://filesamples.com/samples/audio/opus/sample3.opus")

	require.Empty(t, msg.Validate())
	assert.Empty(t, msg.Filename)
}

func TestValidate_ClientSuppliedFilenameIgnored(t *testing.T) {
	msg := validBase(t)
	msg.Text = strPtr("Hello")
	msg.Filename = "client-supplied.txt"

	require.Empty(t, msg.Validate())
	assert.Empty(t, msg.Filename)
}

func TestValidate_InvalidContentFieldSkipsDerivation(t *testing.T) {
	// The payload is neither a URL nor valid base64: the field errors
	// surface, and no filename error piles on top of them.
	msg := validBase(t)
	msg.Image = strPtr("not a url nor base64")

	errs := msg.Validate()
	require.NotEmpty(t, errs)
	for _, e := range errs {
		assert.Equal(t, "image", e.Loc)
	}
}

func TestValidate_TextTooLong(t *testing.T) {
	msg := validBase(t)
	msg.Text = strPtr(strings.Repeat("a", 20001))

	errs := msg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "text", errs[0].Loc)
	assert.Equal(t, "ensure this value has at most 20000 characters", errs[0].Msg)
}

func TestValidate_TextLengthCountsCharacters(t *testing.T) {
	// 15000 two-byte runes are 30000 bytes but well under the 20000
	// character cap.
	msg := validBase(t)
	msg.Text = strPtr(strings.Repeat("ñ", 15000))

	require.Empty(t, msg.Validate())
}

func TestValidate_FormattedListParsesBack(t *testing.T) {
	msg := Message{Phone: "abc", Text: strPtr("Hello")}

	errs := msg.Validate()
	require.NotEmpty(t, errs)

	parsed, err := ParseErrors(FormatErrors(errs))
	require.NoError(t, err)
	assert.Equal(t, errs, parsed)
}
