package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

const (
	MimePdf  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UnsupportedFileTypeError is returned when the parser is handed a MIME type
// it cannot extract text from. It carries the offending type for the UI.
type UnsupportedFileTypeError struct {
	MimeType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MimeType)
}

// Parser converts raw document bytes into plain text. It holds no state and
// never retains the input buffer.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts plain text from data according to the declared MIME type.
// An empty string is a valid result (e.g. a blank document). Parsing a large
// PDF can take a while; the context is checked between pages.
func (p *Parser) Parse(ctx context.Context, data []byte, mimeType string) (string, error) {
	switch {
	case mimeType == MimePdf:
		return p.parsePdf(ctx, data)
	case mimeType == MimeDocx:
		return p.parseDocx(data)
	case strings.HasPrefix(mimeType, "text/"):
		return string(data), nil
	default:
		return "", &UnsupportedFileTypeError{MimeType: mimeType}
	}
}

// parsePdf walks all pages in order. Each page's text fragments are joined
// with single spaces; pages are separated by a blank line.
func (p *Parser) parsePdf(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		fragments := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			fragments = append(fragments, text.S)
		}
		pages = append(pages, strings.Join(fragments, " "))
	}

	return strings.Join(pages, "\n\n"), nil
}

// parseDocx extracts raw text, discarding formatting. Paragraphs become
// newline-separated lines.
func (p *Parser) parseDocx(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(paragraphText(para))
	}
	return sb.String(), nil
}

func paragraphText(para *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				sb.WriteString(t.Text)
			}
		}
	}
	return sb.String()
}
