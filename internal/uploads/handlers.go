package uploads

import (
	"errors"

	"homestead-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// UploadMultiple POST /api/upload-multiple — multipart "images" field.
func (h *Handlers) UploadMultiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, ErrNoFiles.Error(), 400, nil)
	}
	files := form.File["images"]

	urls, err := h.Service.SaveImages(files)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFiles), errors.Is(err, ErrTooManyFiles),
			errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrFileTooLarge):
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Images uploaded", fiber.Map{
		"urls": urls,
	})
}

// UploadJSON POST /api/upload-json — raw JSON metadata document.
func (h *Handlers) UploadJSON(c *fiber.Ctx) error {
	var doc map[string]interface{}
	if err := c.BodyParser(&doc); err != nil {
		return response.Error(c, ErrEmptyMetadata.Error(), 400, nil)
	}

	url, err := h.Service.SaveMetadata(doc)
	if err != nil {
		if errors.Is(err, ErrEmptyMetadata) {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Metadata uploaded", fiber.Map{
		"url": url,
	})
}
