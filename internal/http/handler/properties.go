package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/service"
)

func parseID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListProperties godoc
// @Summary List listings
// @Tags properties
// @Produce json
// @Success 200 {array} model.Listing
// @Router /properties [get]
func ListProperties(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.List(c.UserContext()))
	}
}

// GetProperty godoc
// @Summary Get a listing
// @Tags properties
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 404 {object} errorPayload
// @Router /properties/{id} [get]
func GetProperty(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		l, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(l)
	}
}

// CreateProperty godoc
// @Summary Create a listing
// @Tags properties
// @Accept json
// @Produce json
// @Security AccessToken
// @Param listing body service.ListingInput true "Listing"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errorPayload
// @Router /properties [post]
func CreateProperty(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ListingInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON listing")
		}
		l, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "listing created",
			"property": l,
		})
	}
}

// UpdateProperty godoc
// @Summary Update a listing
// @Description Shallow merge; the path id always wins over a body id.
// @Tags properties
// @Accept json
// @Produce json
// @Security AccessToken
// @Param id path int true "Listing ID"
// @Param patch body service.ListingPatch true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errorPayload
// @Router /properties/{id} [put]
func UpdateProperty(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var patch service.ListingPatch
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
		}
		l, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":  "listing updated",
			"property": l,
		})
	}
}

// DeleteProperty godoc
// @Summary Delete a listing and its uploaded images
// @Tags properties
// @Produce json
// @Security AccessToken
// @Param id path int true "Listing ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /properties/{id} [delete]
func DeleteProperty(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "listing deleted"})
	}
}
