package controller

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"lexi-chat-be/internal/pkg/serverutils"
	"lexi-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Parse(ctx *fiber.Ctx) error
}

type documentController struct {
	documents service.IDocumentService
}

func NewDocumentController(documents service.IDocumentService) IDocumentController {
	return &documentController{documents: documents}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("/parse", c.Parse)
}

// Parse accepts a multipart batch under the "files" field (the single-file
// "file" field also works) and runs it through the ingestion pipeline.
func (c *documentController) Parse(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}

	files := make([]*service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
		}
		files = append(files, file)
	}

	res, err := c.documents.ParseBatch(ctx.Context(), files)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success parse document", res))
}

func readUpload(header *multipart.FileHeader) (*service.UploadedFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &service.UploadedFile{
		Name:     header.Filename,
		MimeType: uploadMimeType(header),
		Size:     header.Size,
		Data:     data,
	}, nil
}

// uploadMimeType trusts the declared content type, falling back to the file
// extension for clients that send application/octet-stream.
func uploadMimeType(header *multipart.FileHeader) string {
	declared := header.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt", ".md", ".csv":
		return "text/plain"
	default:
		if declared != "" {
			return declared
		}
		return "application/octet-stream"
	}
}
