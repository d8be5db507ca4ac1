package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilenameFromURL(t *testing.T) {
	// Percent-encoded segments are decoded.
	assert.Equal(t, "small.mp4",
		FilenameFromURL("http://techslides.com/demos/sample-videos/sm%61ll.mp4"))

	assert.Equal(t, "button-ok.png",
		FilenameFromURL("https://www.applecoredesigns.co.uk/wp-content/uploads/2018/08/button-ok.png"))

	// Not URLs: no host, nothing to derive.
	assert.Equal(t, "", FilenameFromURL(""))
	assert.Equal(t, "", FilenameFromURL("129igqrgf28g283d"))

	// A URL with no path yields an empty name, which callers treat as
	// underivable.
	assert.Equal(t, "", FilenameFromURL("http://example.com"))
	assert.Equal(t, "", FilenameFromURL("http://example.com/dir/"))
}

func TestFilenameFromBase64(t *testing.T) {
	assert.Equal(t, "noname.oga", FilenameFromBase64("data:audio/ogg;base64,T2dnUw=="))
	assert.Equal(t, "noname.oga", FilenameFromBase64("data:audio/ogg;codecs=opus;base64,T2dnUw=="))
	assert.Equal(t, "noname.jpg", FilenameFromBase64("data:image/jpeg;base64,/9j/4AAQ"))
	assert.Equal(t, "noname.mp4", FilenameFromBase64("data:video/mp4;base64,AAAAGGZ0eXA="))
	assert.Equal(t, "noname.pdf", FilenameFromBase64("data:application/pdf;base64,JVBERi0xLjQ="))

	// Unknown MIME type.
	assert.Equal(t, "", FilenameFromBase64("data:application/x-fake-type;base64,AAAA"))

	// Malformed payloads.
	assert.Equal(t, "", FilenameFromBase64("no-semicolon-here"))
	assert.Equal(t, "", FilenameFromBase64(""))
}
