package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatErrors(t *testing.T) {
	rendered := FormatErrors([]Error{
		{Loc: "phone", Msg: "ensure this value has at least 9 characters"},
		{Loc: "token", Msg: "ensure this value has at least 1 characters"},
	})

	assert.Equal(t,
		"In phone: ensure this value has at least 9 characters,,, "+
			"In token: ensure this value has at least 1 characters",
		rendered)
}

func TestParseErrors(t *testing.T) {
	parsed, err := ParseErrors("In body: hello!")
	require.NoError(t, err)
	assert.Equal(t, []Error{{Loc: "body", Msg: "hello!"}}, parsed)

	parsed, err = ParseErrors("In ('body'): hello!")
	require.NoError(t, err)
	assert.Equal(t, []Error{{Loc: "('body')", Msg: "hello!"}}, parsed)

	parsed, err = ParseErrors("In ('body', 'image'): hello!")
	require.NoError(t, err)
	assert.Equal(t, []Error{{Loc: "('body', 'image')", Msg: "hello!"}}, parsed)

	parsed, err = ParseErrors("In ('body', 'image', 'another'): hello!")
	require.NoError(t, err)
	assert.Equal(t, []Error{{Loc: "('body', 'image', 'another')", Msg: "hello!"}}, parsed)
}

func TestParseErrors_InvalidLocation(t *testing.T) {
	for _, rendered := range []string{
		"hello!",
		"In : hello!",
		"In (body): hello!",
		"In ('body',): hello!",
		"In ('body' 'image'): hello!",
		"body: hello!",
	} {
		_, err := ParseErrors(rendered)
		var badMatch *BadMatchInvalidLocError
		require.ErrorAs(t, err, &badMatch, rendered)
		assert.Contains(t, badMatch.Error(), "does not match regex")
	}
}

func TestParseErrors_RoundTrip(t *testing.T) {
	sequences := [][]Error{
		{{Loc: "phone", Msg: "too short"}},
		{{Loc: "__root__", Msg: "At least ONE of these values must be set"}},
		{
			{Loc: "phone", Msg: "ensure this value has at least 9 characters"},
			{Loc: "('body', 'image')", Msg: "field required"},
			{Loc: "filename", Msg: "Filename extracted from base-64/http URL asset not recognized"},
		},
	}

	for _, seq := range sequences {
		parsed, err := ParseErrors(FormatErrors(seq))
		require.NoError(t, err)
		assert.Equal(t, seq, parsed)
	}
}

func TestOnlyOneOfThemError_NamesAllFieldsAndValues(t *testing.T) {
	text := "Hello"
	image := "https://example.com/a.png"

	err := NewOnlyOneOfThemError(
		[]string{"text", "image", "video", "audio", "document"},
		[]*string{&text, &image, nil, nil, nil},
	)

	assert.Equal(t, "__root__", err.Loc)
	assert.Equal(t,
		"Only ONE of these values ('text', 'image', 'video', 'audio', 'document') "+
			"must be properly set, got: ('Hello', 'https://example.com/a.png', None, None, None)",
		err.Msg)
}

func TestAtLeastOneOfThemError(t *testing.T) {
	err := NewAtLeastOneOfThemError(
		[]string{"image", "video", "text", "audio", "document"},
		[]*string{nil, nil, nil, nil, nil},
	)

	assert.Equal(t, "__root__", err.Loc)
	assert.Equal(t,
		"At least ONE of these values ('image', 'video', 'text', 'audio', 'document') "+
			"must be properly set, got: (None, None, None, None, None)",
		err.Msg)
}
