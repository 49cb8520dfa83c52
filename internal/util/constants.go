package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimePNG         = "image/png"
	MimeJPEG        = "image/jpeg"
	MimeWebP        = "image/webp"
	MimeOctetStream = "application/octet-stream"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// MaxSelectionsPerQuestion caps how many options a learner may submit for one question.
const MaxSelectionsPerQuestion = 20

var (
	AllowedVideoExtensions   = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
	AllowedLessonMimeTypes   = []string{MimeVideo, MimePDF}
	AllowedTemplateMimeTypes = []string{MimePDF, MimePNG, MimeJPEG}
)
