package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types for import uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // Often used for CSV by older Excel
	"text/plain":               true, // CSVs are often plain text
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
}

// xlsxMagic is the ZIP local-file-header signature; .xlsx workbooks are ZIP
// containers and always start with it.
var xlsxMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	base := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed := AllowedClientContentTypes[base]; !allowed {
		return fmt.Errorf("client-declared file type '%s' is not allowed for import upload", contentType)
	}
	return nil
}

// isBinaryContent checks if a buffer contains binary control characters
// (like null bytes) which indicate the file is not a valid text-based CSV.
func isBinaryContent(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return true
	}
	if !utf8.Valid(buf) {
		return true
	}
	return false
}

// SniffFileContent inspects the actual file content signature and returns
// the detected file type ("xlsx" or "csv"). XLSX is recognized by its ZIP
// magic bytes; anything else must look like text to pass as CSV. The reader
// is rewound before returning.
func SniffFileContent(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	// Read first 1024 bytes (1KB) for detection
	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}
	buffer = buffer[:n]

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file after content sniffing: %w", err)
	}

	if len(buffer) == 0 {
		return "", fmt.Errorf("uploaded file is empty")
	}

	if bytes.HasPrefix(buffer, xlsxMagic) {
		return "xlsx", nil
	}

	if isBinaryContent(buffer) {
		return "", fmt.Errorf("file content does not look like a CSV or XLSX import file")
	}
	return "csv", nil
}
