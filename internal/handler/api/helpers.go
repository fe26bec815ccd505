package api

import (
	"net/http"

	"equipment-reservation/internal/handler/httperr"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func writeQueryError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, queries.ErrEquipmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Equipment not found", nil)
	case errs.Is(err, queries.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, queries.ErrInvalidInterval):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Start time must be before end time", nil)
	case errs.Is(err, queries.ErrInvalidQuantity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Quantity must be at least 1", nil)
	case errs.Is(err, queries.ErrInvalidCursor),
		errs.Is(err, queries.ErrInvalidStatusFilter):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
