package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

// CardResyncer enqueues a bulk re-sync of every artist card.
type CardResyncer interface {
	ResyncAll(ctx context.Context) (int, error)
}

// CardHandler serves the browse cards.
type CardHandler struct {
	service  ports.CardService
	resyncer CardResyncer
}

func NewCardHandler(service ports.CardService, resyncer CardResyncer) *CardHandler {
	return &CardHandler{service: service, resyncer: resyncer}
}

// List handles GET /v1/cards — the public browse endpoint.
//
// @Summary      Browse artist cards
// @Tags         cards
// @Produce      json
// @Param        tag          query    string  false  "Filter by tag"
// @Param        available    query    bool    false  "Only available artists"
// @Param        recommended  query    bool    false  "Only user-recommended cards"
// @Success      200          {array}  domain.Card
// @Router       /v1/cards [get]
func (h *CardHandler) List(c echo.Context) error {
	filter := ports.CardFilter{
		Tag:             c.QueryParam("tag"),
		AvailableOnly:   c.QueryParam("available") == "true",
		RecommendedOnly: c.QueryParam("recommended") == "true",
	}

	cards, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if cards == nil {
		cards = []*domain.Card{}
	}
	return c.JSON(http.StatusOK, cards)
}

// Get handles GET /v1/cards/:id.
//
// @Summary      Get a card by id
// @Tags         cards
// @Produce      json
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  domain.Card
// @Failure      404  {object}  map[string]string
// @Router       /v1/cards/{id} [get]
func (h *CardHandler) Get(c echo.Context) error {
	card, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

type resyncResponse struct {
	Enqueued int `json:"enqueued"`
}

// Resync handles POST /v1/admin/cards/resync — enqueues a re-sync of every
// artist card through the sharded dispatcher. Admin only.
//
// @Summary      Re-sync all artist cards from authoritative profiles
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  resyncResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/cards/resync [post]
func (h *CardHandler) Resync(c echo.Context) error {
	n, err := h.resyncer.ResyncAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, resyncResponse{Enqueued: n})
}
