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

type CategoryHandler struct {
	cmds commands.CategoryCommands
	q    queries.CategoryQueries
}

func NewCategoryHandler(cmds commands.CategoryCommands, q queries.CategoryQueries) *CategoryHandler {
	return &CategoryHandler{cmds: cmds, q: q}
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.CategoryResponse
// @Failure 500 {object} httperr.Response
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryViews(items))
}

// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCategoryRequest true "Category"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req reqdto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCategory):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid category", gin.H{"reason": err.Error()})
		case errs.Is(err, commands.ErrDuplicateCategory):
			httperr.AbortWithError(c, http.StatusConflict, err, "Category already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}
