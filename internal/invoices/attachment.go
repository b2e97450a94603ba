package invoices

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxAttachmentSize caps inline attachments. Documents are embedded in the
// row payload as data URLs, so the cap is enforced before any encoding work.
const MaxAttachmentSize = 1 << 20

// ErrAttachmentTooLarge rejects oversize uploads.
var ErrAttachmentTooLarge = errors.New("invoices: attachment exceeds 1MB limit")

// Attachment is the encoded document stored alongside an invoice.
type Attachment struct {
	FileName string
	FileType string
	FileURL  string
}

// EncodeAttachment validates and encodes raw file content for inline storage.
// The type tag collapses to "image" for any image MIME type and "pdf"
// otherwise.
func EncodeAttachment(fileName, mimeType string, content []byte) (Attachment, error) {
	if len(content) > MaxAttachmentSize {
		return Attachment{}, ErrAttachmentTooLarge
	}
	fileType := "pdf"
	if strings.Contains(mimeType, "image") {
		fileType = "image"
	}
	encoded := base64.StdEncoding.EncodeToString(content)
	return Attachment{
		FileName: fileName,
		FileType: fileType,
		FileURL:  fmt.Sprintf("data:%s;base64,%s", mimeType, encoded),
	}, nil
}
