package server

import (
	"shoplist/internal/models"
	"shoplist/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createItemRequest struct {
	Description string  `json:"description"`
	PhotoURL    *string `json:"photo_url"`
	CategoryID  string  `json:"category_id"`
}

// updateItemRequest fields are optional; absent fields are left unchanged.
type updateItemRequest struct {
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url"`
	CategoryID  *string `json:"category_id"`
}

// GetItems handles GET /api/items
// @Summary List items
// @Description The caller's items, newest first
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ShoppingItem
// @Router /items [get]
func (s *Server) GetItems(c *fiber.Ctx) error {
	items, err := s.itemService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

// CreateItem handles POST /api/items
// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createItemRequest true "Item"
// @Success 200 {object} models.ShoppingItem
// @Failure 400 {object} models.ErrorResponse
// @Router /items [post]
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var req createItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	item, err := s.itemService.Create(c.UserContext(), service.CreateItemInput{
		UserID:      currentUserID(c),
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// UpdateItem handles PUT /api/items/:id
// @Summary Update item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body updateItemRequest true "Fields to change"
// @Success 200 {object} models.ShoppingItem
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id} [put]
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	id, ok := itemIDParam(c)
	if !ok {
		return respondServiceError(c, models.NewNotFoundError("Item", id))
	}

	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	item, err := s.itemService.Update(c.UserContext(), service.UpdateItemInput{
		UserID:      currentUserID(c),
		ItemID:      id,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// ToggleItem handles PATCH /api/items/:id/toggle
// @Summary Toggle purchased
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.ShoppingItem
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id}/toggle [patch]
func (s *Server) ToggleItem(c *fiber.Ctx) error {
	id, ok := itemIDParam(c)
	if !ok {
		return respondServiceError(c, models.NewNotFoundError("Item", id))
	}

	item, err := s.itemService.Toggle(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem handles DELETE /api/items/:id
// @Summary Delete item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id} [delete]
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	id, ok := itemIDParam(c)
	if !ok {
		return respondServiceError(c, models.NewNotFoundError("Item", id))
	}

	if err := s.itemService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.MessageResponse{Message: "Item deleted"})
}
