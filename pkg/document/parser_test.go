package document

import (
	"context"
	"errors"
	"testing"
)

func TestParsePlainText(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		data     string
		want     string
	}{
		{
			name:     "text plain verbatim",
			mimeType: "text/plain",
			data:     "hello\nworld",
			want:     "hello\nworld",
		},
		{
			name:     "markdown treated as text",
			mimeType: "text/markdown",
			data:     "# Title\n\nBody",
			want:     "# Title\n\nBody",
		},
		{
			name:     "text with charset parameter",
			mimeType: "text/plain; charset=utf-8",
			data:     "café",
			want:     "café",
		},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(context.Background(), []byte(tt.data), tt.mimeType)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseUnsupportedType(t *testing.T) {
	p := NewParser()

	for _, mimeType := range []string{"application/zip", "video/mp4", "application/octet-stream"} {
		t.Run(mimeType, func(t *testing.T) {
			_, err := p.Parse(context.Background(), []byte("data"), mimeType)

			var unsupported *UnsupportedFileTypeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Parse() error = %v, want UnsupportedFileTypeError", err)
			}
			if unsupported.MimeType != mimeType {
				t.Errorf("MimeType = %q, want %q", unsupported.MimeType, mimeType)
			}
		})
	}
}

func TestParseCorruptPdf(t *testing.T) {
	p := NewParser()

	_, err := p.Parse(context.Background(), []byte("not a pdf"), MimePdf)
	if err == nil {
		t.Fatal("Parse() expected error for corrupt PDF input")
	}
}

func TestParseCorruptDocx(t *testing.T) {
	p := NewParser()

	_, err := p.Parse(context.Background(), []byte("not a docx"), MimeDocx)
	if err == nil {
		t.Fatal("Parse() expected error for corrupt DOCX input")
	}
}
