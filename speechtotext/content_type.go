package speechtotext

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of the audio is read to detect its format.
const sniffLen = 3072

// DetectContentType guesses the Content-Type of audio from its first
// bytes. It recognizes the formats the service accepts (FLAC, MP3, Ogg,
// WAV, WebM, and others) plus the zip and gzip archives accepted by
// AddAudio. Anything else is reported as application/octet-stream, which
// the service rejects with a descriptive error.
//
// Raw formats without a header, such as audio/l16 and audio/mulaw, cannot
// be detected; pass their ContentType explicitly.
func DetectContentType(head []byte) string {
	mt := mimetype.Detect(head)
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case m.Is("video/webm"), m.Is("audio/webm"):
			return "audio/webm"
		case m.Is("application/ogg"), m.Is("audio/ogg"):
			return "audio/ogg"
		case m.Is(ContentTypeZip):
			return ContentTypeZip
		case m.Is(ContentTypeGzip):
			return ContentTypeGzip
		case strings.HasPrefix(m.String(), "audio/"):
			return m.String()
		}
	}
	return "application/octet-stream"
}
