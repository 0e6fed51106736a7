package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	CommissionID string  `json:"commission_id" validate:"required"`
	Rating       float64 `json:"rating"        validate:"min=0,max=5"`
	Comment      string  `json:"comment"       validate:"required"`
}

// Create handles POST /v1/reviews. Artist and user are derived from the
// commission server-side.
//
// @Summary      Review a commission
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.Create(c.Request().Context(), ports.CreateReviewInput{
		CommissionID: req.CommissionID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Get handles GET /v1/reviews/:id.
//
// @Summary      Get a review by id
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  domain.Review
// @Failure      404  {object}  map[string]string
// @Router       /v1/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// ListByArtist handles GET /v1/artists/:id/reviews.
//
// @Summary      List reviews received by an artist
// @Tags         reviews
// @Produce      json
// @Param        id   path     string  true  "Artist id"
// @Success      200  {array}  domain.Review
// @Router       /v1/artists/{id}/reviews [get]
func (h *ReviewHandler) ListByArtist(c echo.Context) error {
	reviews, err := h.service.ListByArtist(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}
