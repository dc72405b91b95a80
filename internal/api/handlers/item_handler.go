package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/internal/api/presenters"
	"Nutripedia-Backend/internal/logging"
	"Nutripedia-Backend/pkg/item"
)

type (
	ItemHandler interface {
		LookupItem(c *fiber.Ctx) error
	}

	itemHandler struct {
		itemService item.ItemService
	}
)

func NewItemHandler(itemService item.ItemService) ItemHandler {
	return &itemHandler{
		itemService: itemService,
	}
}

// LookupItem maps every pipeline outcome onto the response table: 200 for a
// hit (found:true) or a fresh generation (found:false), 400 for a missing
// name, 404 for a semantic rejection, 502 for an unavailable generator, 500
// for parse, schema and persistence failures.
func (h *itemHandler) LookupItem(c *fiber.Ctx) error {
	name := c.Query("name")
	requestID, _ := c.Locals("requestid").(string)
	log := logging.WithRequest(requestID, name)

	if strings.TrimSpace(name) == "" {
		log.Warn("lookup rejected", "error", domain.ErrItemNameRequired)
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageItemNameRequired)
	}

	res, err := h.itemService.Lookup(c.Context(), name, requestID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidItem):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageItemNotFound)
		case errors.Is(err, domain.ErrNotConsumable):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageItemNotConsumable)
		case errors.Is(err, domain.ErrGeneratorUnavailable):
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageGeneratorUnavailable)
		case errors.Is(err, domain.ErrGeneratorParse):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedParseItem)
		case errors.Is(err, domain.ErrSchemaViolation):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedValidateItem)
		case errors.Is(err, domain.ErrItemAlreadyExists), errors.Is(err, domain.ErrPersistFailed):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedPersistItem)
		default:
			log.Error("unanticipated lookup failure", "error", err)
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageInternalServerError)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
