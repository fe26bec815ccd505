package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"equipment-reservation/internal/domain/admin"
	"equipment-reservation/internal/handler/api"
	"equipment-reservation/internal/handler/middleware"
	"equipment-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Category    *api.CategoryHandler
	Equipment   *api.EquipmentHandler
	Reservation *api.ReservationHandler
}

type Middlewares struct {
	Auth         *middleware.AuthMiddleware
	CatalogCache *middleware.CatalogCache
	RateLimiter  *middleware.IPRateLimiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// outermost so panics anywhere below still get a JSON 500
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limit := mw.RateLimiter.Limit()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{limit}},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(mw.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		// catalog pages are cached; availability and reservations never are
		catalog := apiGroup.Group("")
		catalog.Use(mw.CatalogCache.Cache())
		addRoutes(catalog, []route{
			{Method: http.MethodGet, Path: "/categories", Handler: h.Category.List},
			{Method: http.MethodGet, Path: "/equipment", Handler: h.Equipment.List},
			{Method: http.MethodGet, Path: "/equipment/:id", Handler: h.Equipment.Get},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/equipment/:id/availability", Handler: h.Equipment.Availability},
			{Method: http.MethodGet, Path: "/equipment/:id/reservations", Handler: h.Equipment.Reservations},
		})

		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create, Mw: []gin.HandlerFunc{limit}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel, Mw: []gin.HandlerFunc{limit}},
		})

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(mw.Auth.RequireAuth(), mw.Auth.RequireRoleAtLeast(admin.RoleStaff))
		{
			addRoutes(adminGroup.Group("/reservations"), []route{
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservation.Update},
				{Method: http.MethodPost, Path: "/:id/status", Handler: h.Reservation.ChangeStatus},
			})
			// inactive items are only listed here, outside the catalog cache
			addRoutes(adminGroup, []route{
				{Method: http.MethodGet, Path: "/equipment", Handler: h.Equipment.AdminList},
			})

			catalogAdmin := adminGroup.Group("")
			catalogAdmin.Use(mw.Auth.RequireRoleAtLeast(admin.RoleAdmin), mw.CatalogCache.Invalidate())
			addRoutes(catalogAdmin, []route{
				{Method: http.MethodPost, Path: "/equipment", Handler: h.Equipment.Create},
				{Method: http.MethodPut, Path: "/equipment/:id", Handler: h.Equipment.Update},
				{Method: http.MethodDelete, Path: "/equipment/:id", Handler: h.Equipment.Delete},
				{Method: http.MethodPost, Path: "/categories", Handler: h.Category.Create},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
