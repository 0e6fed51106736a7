package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

// CommissionHandler handles HTTP requests for the commission lifecycle.
type CommissionHandler struct {
	service ports.CommissionService
}

func NewCommissionHandler(service ports.CommissionService) *CommissionHandler {
	return &CommissionHandler{service: service}
}

type createCommissionRequest struct {
	ArtistID string  `json:"artist_id" validate:"required"`
	Title    string  `json:"title"     validate:"required"`
	Details  string  `json:"details"   validate:"required"`
	Price    float64 `json:"price"     validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed Cancelled"`
}

type progressUpdateRequest struct {
	Message string `json:"message" validate:"required"`
}

// Create handles POST /v1/commissions. The requesting user is the caller.
//
// @Summary      Request a commission from an artist
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommissionRequest  true  "Commission details"
// @Success      201   {object}  domain.Commission
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/commissions [post]
func (h *CommissionHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createCommissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	commission, err := h.service.Create(c.Request().Context(), ports.CreateCommissionInput{
		ArtistID: req.ArtistID,
		UserID:   userID,
		Title:    req.Title,
		Details:  req.Details,
		Price:    req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, commission)
}

// Get handles GET /v1/commissions/:id.
//
// @Summary      Get a commission by id
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Commission id"
// @Success      200  {object}  domain.Commission
// @Failure      404  {object}  map[string]string
// @Router       /v1/commissions/{id} [get]
func (h *CommissionHandler) Get(c echo.Context) error {
	commission, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commission)
}

// List handles GET /v1/commissions: artists see commissions they fulfill,
// everyone sees commissions they requested.
//
// @Summary      List the caller's commissions
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Commission
// @Router       /v1/commissions [get]
func (h *CommissionHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var commissions []*domain.Commission
	if role == domain.RoleArtist {
		commissions, err = h.service.ListByArtist(c.Request().Context(), userID)
	} else {
		commissions, err = h.service.ListByUser(c.Request().Context(), userID)
	}
	if err != nil {
		return err
	}
	if commissions == nil {
		commissions = []*domain.Commission{}
	}
	return c.JSON(http.StatusOK, commissions)
}

// UpdateStatus handles PATCH /v1/commissions/:id/status. The state machine is
// enforced by the service; who may request which target state is enforced
// here: artists drive the work forward, requesting users may only cancel.
//
// @Summary      Transition a commission's status
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Commission id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Commission
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/commissions/{id}/status [patch]
func (h *CommissionHandler) UpdateStatus(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	next := domain.CommissionStatus(req.Status)
	if !statusAllowedForRole(role, next) {
		return echo.NewHTTPError(http.StatusForbidden, "role may not set this status")
	}

	commission, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), next)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commission)
}

// AddProgress handles POST /v1/commissions/:id/progress.
//
// @Summary      Attach a progress update to a commission
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Commission id"
// @Param        body  body      progressUpdateRequest  true  "Progress note"
// @Success      200   {object}  domain.Commission
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/commissions/{id}/progress [post]
func (h *CommissionHandler) AddProgress(c echo.Context) error {
	var req progressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	commission, err := h.service.AddProgressUpdate(c.Request().Context(), c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commission)
}

// statusAllowedForRole encodes transition authority: admins set anything,
// artists move work forward or cancel, users only cancel.
func statusAllowedForRole(role string, next domain.CommissionStatus) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleArtist:
		return next == domain.StatusInProgress || next == domain.StatusCompleted || next == domain.StatusCancelled
	default:
		return next == domain.StatusCancelled
	}
}
