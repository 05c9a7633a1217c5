package infrastructure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmatcher/domain"
)

func TestExtractTextFromFileRejectsNonPDF(t *testing.T) {
	for _, name := range []string{"resume.docx", "resume.txt", "resume", "resume.pdf.bak"} {
		_, err := ExtractTextFromFile(strings.NewReader("content"), name)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat, name)
	}
}

func TestExtractTextFromFileSuffixCaseInsensitive(t *testing.T) {
	// Accepted as PDF, then fails to parse; must not be the format error.
	_, err := ExtractTextFromFile(strings.NewReader("not a real pdf"), "RESUME.PDF")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedFormat)
}
