package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/pkg/logger"
	"lexi-chat-be/pkg/document"

	"github.com/patrickmn/go-cache"
)

// UploadedFile is one file from a composer upload batch.
type UploadedFile struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// AttachmentId mirrors the composer's id scheme: file name plus a stamp,
// unique within one batch.
func (f *UploadedFile) AttachmentId() string {
	return fmt.Sprintf("%s-%d", f.Name, f.Size)
}

// IDocumentService runs the document-ingestion pipeline: exactly one
// non-image file per batch gets its text extracted; the rest ride along as
// opaque attachments.
type IDocumentService interface {
	ParseBatch(ctx context.Context, files []*UploadedFile) (*dto.ParseDocumentResponse, error)
}

type documentService struct {
	parser *document.Parser
	// Extracted text keyed by attachment id, so re-selecting the same file
	// does not re-run a long parse.
	textCache *cache.Cache
	logger    logger.ILogger
}

func NewDocumentService(parser *document.Parser, log logger.ILogger) IDocumentService {
	return &documentService{
		parser:    parser,
		textCache: cache.New(1*time.Hour, 10*time.Minute),
		logger:    log,
	}
}

// ParseBatch extracts text from the first non-image file of the batch.
// Additional non-image files are reported as skipped; image files never
// reach the parser.
func (s *documentService) ParseBatch(ctx context.Context, files []*UploadedFile) (*dto.ParseDocumentResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no file uploaded")
	}

	var target *UploadedFile
	skipped := make([]string, 0)
	for _, f := range files {
		if strings.HasPrefix(f.MimeType, "image/") {
			continue
		}
		if target == nil {
			target = f
		} else {
			skipped = append(skipped, f.Name)
		}
	}

	if target == nil {
		// Image-only batch: nothing to extract, not an error.
		return &dto.ParseDocumentResponse{Text: ""}, nil
	}

	attachmentId := target.AttachmentId()
	if cached, found := s.textCache.Get(attachmentId); found {
		return &dto.ParseDocumentResponse{
			Text:     cached.(string),
			ParsedId: attachmentId,
			Skipped:  skipped,
		}, nil
	}

	started := time.Now()
	text, err := s.parser.Parse(ctx, target.Data, target.MimeType)
	if err != nil {
		return nil, err
	}

	s.logger.Info("DocumentService", "Document parsed", map[string]interface{}{
		"name":        target.Name,
		"mime_type":   target.MimeType,
		"size":        target.Size,
		"text_length": len(text),
		"duration_ms": time.Since(started).Milliseconds(),
	})

	s.textCache.Set(attachmentId, text, cache.DefaultExpiration)

	return &dto.ParseDocumentResponse{
		Text:     text,
		ParsedId: attachmentId,
		Skipped:  skipped,
	}, nil
}
