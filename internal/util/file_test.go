package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffMimeType(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want string
	}{
		{name: "pdf", head: []byte("%PDF-1.7\n%"), want: MimePDF},
		{name: "png", head: []byte("\x89PNG\r\n\x1a\n"), want: MimePNG},
		{name: "webp", head: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), want: MimeWebP},
		{name: "plain text", head: []byte("hello world"), want: "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffMimeType(tt.head))
		})
	}
}

func TestValidateMimeType(t *testing.T) {
	pdf := bytes.NewReader([]byte("%PDF-1.7\nrest of the file"))
	mime, err := ValidateMimeType(pdf, AllowedLessonMimeTypes)
	assert.NoError(t, err)
	assert.Equal(t, MimePDF, mime)

	text := bytes.NewReader([]byte("just some text"))
	_, err = ValidateMimeType(text, AllowedLessonMimeTypes)
	assert.Error(t, err)
}

func TestValidateMimeTypePrefixMatch(t *testing.T) {
	// "video/" in the allow-list matches any concrete video type.
	webm := bytes.NewReader([]byte("\x1a\x45\xdf\xa3rest"))
	mime, err := ValidateMimeType(webm, []string{MimeVideo})
	assert.NoError(t, err)
	assert.Contains(t, mime, "video/")
}

func TestMimePredicates(t *testing.T) {
	assert.True(t, IsPDF(MimePDF))
	assert.False(t, IsPDF(MimePNG))
	assert.True(t, IsImage(MimePNG))
	assert.True(t, IsVideo("video/mp4"))
	assert.False(t, IsVideo(MimePDF))
}
