package validation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClientContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{"csv", "text/csv", false},
		{"csv with charset", "text/csv; charset=utf-8", false},
		{"plain text", "text/plain", false},
		{"legacy excel", "application/vnd.ms-excel", false},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", false},
		{"uppercase", "TEXT/CSV", false},
		{"pdf", "application/pdf", true},
		{"html", "text/html", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClientContentType(tt.contentType)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSniffFileContent(t *testing.T) {
	t.Run("detects xlsx by zip magic", func(t *testing.T) {
		payload := append([]byte{0x50, 0x4b, 0x03, 0x04}, []byte("rest of archive")...)

		fileType, err := SniffFileContent(bytes.NewReader(payload))
		require.NoError(t, err)
		assert.Equal(t, "xlsx", fileType)
	})

	t.Run("plain text passes as csv", func(t *testing.T) {
		fileType, err := SniffFileContent(bytes.NewReader([]byte("Transaction Date,Amount\n2024-01-15,1000\n")))
		require.NoError(t, err)
		assert.Equal(t, "csv", fileType)
	})

	t.Run("rejects binary content", func(t *testing.T) {
		_, err := SniffFileContent(bytes.NewReader([]byte{0x7f, 0x45, 0x4c, 0x46, 0x00, 0x01}))
		assert.Error(t, err)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		_, err := SniffFileContent(bytes.NewReader(nil))
		assert.Error(t, err)
	})

	t.Run("rewinds the reader", func(t *testing.T) {
		payload := []byte("Transaction Date,Amount\n2024-01-15,1000\n")
		reader := bytes.NewReader(payload)

		_, err := SniffFileContent(reader)
		require.NoError(t, err)

		rest := make([]byte, len(payload))
		n, _ := reader.Read(rest)
		assert.Equal(t, len(payload), n, "reader must be positioned at the start after sniffing")
	})
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("<script>alert(1)</script>hello"))
	assert.Equal(t, "plain note", SanitizeText("plain note"))
	assert.Equal(t, "ab", SanitizeText("a\x00\x01b"))
}

func TestSanitizeForFormulaInjection(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", SanitizeForFormulaInjection("=SUM(A1)"))
	assert.Equal(t, "'+1234", SanitizeForFormulaInjection("+1234"))
	assert.Equal(t, "'@cmd", SanitizeForFormulaInjection("@cmd"))
	assert.Equal(t, "TXN-1001", SanitizeForFormulaInjection("TXN-1001"))
	assert.Equal(t, "", SanitizeForFormulaInjection(""))
}
