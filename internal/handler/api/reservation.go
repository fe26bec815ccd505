package api

import (
	"net/http"

	"equipment-reservation/internal/domain/reservation"
	reqdto "equipment-reservation/internal/handler/dto/request"
	resdto "equipment-reservation/internal/handler/dto/response"
	"equipment-reservation/internal/handler/httperr"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	msgFullyBooked       = "This item is fully booked for the selected period"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Books equipment for [start_time, end_time). Capacity is re-checked under a lock.
// @Tags reservations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first result for a repeated submission"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req, idempotencyKey)
	if err != nil {
		writeReservationCommandError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ReservationID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel own reservation
// @Description The requester proves ownership with the contact given at booking time
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Contact"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req reqdto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.CancelByRequester(c.Request.Context(), id, req); err != nil {
		writeReservationCommandError(c, err)
		return
	}
	h.respondWithView(c, id, false)
}

// @Summary List reservations
// @Description Filter by equipment, status set and overlapping window; keyset paging on start time
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param equipment_id query string false "Equipment ID"
// @Param status query []string false "Statuses" collectionFormat(multi)
// @Param start query string false "Window start (RFC 3339)"
// @Param end query string false "Window end (RFC 3339)"
// @Param cursor query string false "next_cursor of the previous page"
// @Param limit query int false "Page size (default 50, max 200)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	params := queries.ReservationListParams{
		Statuses: query.Status,
		Limit:    query.Limit,
	}
	if query.EquipmentID != "" {
		id := uuid.MustParse(query.EquipmentID)
		params.EquipmentID = &id
	}
	if !query.Start.IsZero() {
		params.Start = &query.Start
	}
	if !query.End.IsZero() {
		params.End = &query.End
	}
	if query.Cursor != "" {
		params.Cursor = &queries.Cursor{After: query.Cursor}
	}

	items, next, err := h.q.List(c.Request.Context(), params)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary Edit reservation
// @Description Capacity is re-checked with this reservation excluded
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Changes"
// @Success 200 {object} resdto.AdminReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/reservations/{id} [patch]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.Update(c.Request.Context(), id, req); err != nil {
		writeReservationCommandError(c, err)
		return
	}
	h.respondWithView(c, id, true)
}

// @Summary Change reservation status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 200 {object} resdto.AdminReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/reservations/{id}/status [post]
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.ChangeStatus(c.Request.Context(), id, req); err != nil {
		writeReservationCommandError(c, err)
		return
	}
	h.respondWithView(c, id, true)
}

func (h *ReservationHandler) respondWithView(c *gin.Context, id uuid.UUID, admin bool) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}
	if admin {
		c.JSON(http.StatusOK, resdto.FromAdminReservationView(view))
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func writeReservationCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, msgFullyBooked, nil)
	case errs.Is(err, commands.ErrEquipmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Equipment not found", nil)
	case errs.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, commands.ErrEquipmentNotReservable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "This item is not available for reservation", nil)
	case errs.Is(err, commands.ErrInvalidReservation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation", gin.H{"reason": err.Error()})
	case errs.Is(err, reservation.ErrContactMismatch):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Contact does not match the reservation", nil)
	case errs.Is(err, commands.ErrStatusChangeRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, "Status change not allowed", gin.H{"reason": err.Error()})
	case errs.Is(err, commands.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Idempotency-Key was already used for a different request", nil)
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation request is currently being processed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// getIdempotencyKey returns nil when the header is absent.
func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return nil, nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
