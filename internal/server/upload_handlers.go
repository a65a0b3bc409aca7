package server

import (
	"io"

	"shoplist/internal/models"
	"shoplist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadPhoto handles POST /api/upload
// @Summary Upload item photo
// @Description Returns the photo as a data URL to store in photo_url
// @Tags items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} service.PhotoResult
// @Failure 400 {object} models.ErrorResponse
// @Router /upload [post]
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid file upload"))
	}
	defer func() { _ = file.Close() }()

	// Read one byte past the limit so oversized files are rejected by the service.
	content, err := io.ReadAll(io.LimitReader(file, s.photoService.MaxUploadBytes()+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid file upload"))
	}

	result, err := s.photoService.Upload(c.UserContext(), service.UploadPhotoInput{
		UserID:      currentUserID(c),
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
