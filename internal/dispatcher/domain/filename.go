package domain

import (
	"net/url"
	"strings"
)

// mimeExtensions maps the MIME types admitted by the base-64 patterns to
// a file extension. A fixed table keeps derivation deterministic across
// hosts; mime.ExtensionsByType consults /etc/mime.types and would make
// the derived name depend on the machine the gateway runs on.
var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",

	"video/mp4":       ".mp4",
	"video/mpeg":      ".mpeg",
	"video/quicktime": ".mov",
	"video/3gpp":      ".3gp",

	"audio/ogg": ".oga",

	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.oasis.opendocument.text":                                 ".odt",
}

// FilenameFromURL derives a filename from the final path segment of an
// HTTP URL, percent-decoded. It returns "" when the value does not parse
// as a URL with a host; callers treat "" as underivable.
func FilenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}

	// url.Parse already percent-decoded Path, so sm%61ll.mp4 comes out
	// as small.mp4 here.
	segment := parsed.Path
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	return segment
}

// FilenameFromBase64 derives a filename from the MIME type embedded in a
// data URL. The original name is never recoverable from base-64 input, so
// the result is always the stem "noname" plus the mapped extension
// (e.g. noname.jpg). Unknown MIME types yield "".
func FilenameFromBase64(payload string) string {
	end := strings.Index(payload, ";")
	if end < len("data:") {
		return ""
	}

	mimeType := payload[len("data:"):end]
	ext, ok := mimeExtensions[mimeType]
	if !ok {
		return ""
	}
	return "noname" + ext
}
