package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType sniffs the real MIME type of the stream head and checks it
// against the allow-list. allowedTypes entries are prefixes ("image/", "video/")
// or full types ("application/pdf").
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// SniffMimeType detects the MIME type without validating it.
func SniffMimeType(head []byte) string {
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}

func IsPDF(mimeType string) bool {
	return mimeType == MimePDF
}
