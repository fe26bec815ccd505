package api

import (
	"net/http"

	reqdto "equipment-reservation/internal/handler/dto/request"
	resdto "equipment-reservation/internal/handler/dto/response"
	"equipment-reservation/internal/handler/httperr"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	cmds         commands.EquipmentCommands
	q            queries.EquipmentQueries
	availability queries.AvailabilityQueries
}

func NewEquipmentHandler(
	cmds commands.EquipmentCommands,
	q queries.EquipmentQueries,
	availability queries.AvailabilityQueries,
) *EquipmentHandler {
	return &EquipmentHandler{cmds: cmds, q: q, availability: availability}
}

// @Summary List equipment
// @Description Active, non-deleted equipment
// @Tags catalog
// @Produce json
// @Param category_id query string false "Category ID"
// @Success 200 {array} resdto.EquipmentResponse
// @Failure 400 {object} httperr.Response
// @Router /api/equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
	var query reqdto.ListEquipmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	h.list(c, query.Filter(false))
}

// @Summary List equipment (admin)
// @Description Same as the public list, optionally including inactive items
// @Tags admin
// @Produce json
// @Param category_id query string false "Category ID"
// @Param include_inactive query bool false "Include inactive items"
// @Success 200 {array} resdto.EquipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/equipment [get]
func (h *EquipmentHandler) AdminList(c *gin.Context) {
	var query reqdto.AdminListEquipmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	h.list(c, query.Filter(query.IncludeInactive))
}

func (h *EquipmentHandler) list(c *gin.Context, filter queries.EquipmentFilter) {
	items, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEquipmentViews(items))
}

// @Summary Get equipment
// @Tags catalog
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEquipmentView(view))
}

// @Summary Check availability
// @Description Capacity left for [start, end). remaining is null for unlimited equipment.
// @Tags availability
// @Produce json
// @Param id path string true "Equipment ID"
// @Param start query string true "Window start (RFC 3339)"
// @Param end query string true "Window end (RFC 3339)"
// @Param quantity query int false "Requested quantity (default 1)"
// @Param excludeReservationId query string false "Reservation to ignore, for edits"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/equipment/{id}/availability [get]
func (h *EquipmentHandler) Availability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	view, err := h.availability.CheckAvailability(c.Request.Context(), queries.AvailabilityInput{
		EquipmentID:          id,
		Start:                query.Start,
		End:                  query.End,
		Quantity:             query.Quantity,
		ExcludeReservationID: query.Exclude(),
	})
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Reservations overlapping a window
// @Description Active reservations of one item that overlap [start, end), earliest first
// @Tags availability
// @Produce json
// @Param id path string true "Equipment ID"
// @Param start query string true "Window start (RFC 3339)"
// @Param end query string true "Window end (RFC 3339)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/equipment/{id}/reservations [get]
func (h *EquipmentHandler) Reservations(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var query reqdto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	items, err := h.availability.FindOverlapping(c.Request.Context(), id, query.Start, query.End)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(items))
}

// @Summary Create equipment
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateEquipmentRequest true "Equipment"
// @Success 201 {object} resdto.EquipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/equipment [post]
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		writeEquipmentCommandError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load equipment", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromEquipmentView(view))
}

// @Summary Update equipment
// @Description Absent fields keep their value
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param request body reqdto.UpdateEquipmentRequest true "Equipment"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req reqdto.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.Update(c.Request.Context(), id, req); err != nil {
		writeEquipmentCommandError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load equipment", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEquipmentView(view))
}

// @Summary Delete equipment
// @Description Soft delete; existing reservations keep their reference
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/admin/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		writeEquipmentCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeEquipmentCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidEquipment):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid equipment", gin.H{"reason": err.Error()})
	case errs.Is(err, commands.ErrCategoryNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Category not found", nil)
	case errs.Is(err, commands.ErrEquipmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Equipment not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
