package document

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// MediaType is the declared family of an uploaded document. PDFs are the only
// paged media; everything else is submitted to the model as a single chunk.
type MediaType string

const (
	MediaPDF   MediaType = "pdf"
	MediaImage MediaType = "image"
	MediaText  MediaType = "text"

	// MediaUnknown marks an upload whose bytes match no supported family.
	MediaUnknown MediaType = "unknown"
)

// ParseError means the uploaded bytes could not be decoded as the declared
// media type. It is fatal to the run: no chunks are produced.
type ParseError struct {
	Media MediaType
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse document as %s: %v", e.Media, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SourceDocument is an uploaded supplier document. Immutable once created.
type SourceDocument struct {
	Filename string
	Media    MediaType
	MIME     string
	Data     []byte
}

// Chunk is a standalone sub-document re-encoded in the source's media type.
// FirstPage/PageCount are 1-based and only meaningful for paged media.
type Chunk struct {
	Index     int
	FirstPage int
	PageCount int
	Media     MediaType
	MIME      string
	Data      []byte
}

var extMIME = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".md":   "text/plain",
}

// New builds a SourceDocument from an upload, deriving media type from the
// file extension and falling back to content sniffing.
func New(filename string, data []byte) (SourceDocument, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mime, ok := extMIME[ext]
	if !ok {
		mime = http.DetectContentType(data)
	}

	var media MediaType
	switch {
	case mime == "application/pdf":
		media = MediaPDF
	case strings.HasPrefix(mime, "image/"):
		media = MediaImage
	case strings.HasPrefix(mime, "text/"):
		media = MediaText
	default:
		return SourceDocument{}, &ParseError{Media: MediaUnknown, Err: fmt.Errorf("unsupported media type %q", mime)}
	}

	return SourceDocument{Filename: filename, Media: media, MIME: mime, Data: data}, nil
}
