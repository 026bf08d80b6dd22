package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rentalflow/internal/handler/api"
	"rentalflow/internal/handler/middleware"
	"rentalflow/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Intent      *api.IntentHandler
	Offer       *api.OfferHandler
	Agreement   *api.AgreementHandler
	Fulfillment *api.FulfillmentHandler
	Catalog     *api.CatalogHandler
	Party       *api.PartyHandler
	Admin       *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		resources := apiGroup.Group("/resources")
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.GetResource},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Catalog.GetAvailability},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authed.Group("/intents"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Intent.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Intent.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Intent.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Intent.Cancel},
			})

			addRoutes(authed.Group("/offers"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Offer.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Offer.Get},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Offer.Accept},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: h.Offer.Decline},
				{Method: http.MethodPost, Path: "/:id/withdraw", Handler: h.Offer.Withdraw},
			})

			addRoutes(authed.Group("/agreements"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Agreement.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Agreement.Get},
				{Method: http.MethodPost, Path: "/:id/sign", Handler: h.Agreement.Sign},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Agreement.Cancel},
				{Method: http.MethodPost, Path: "/:id/dispute", Handler: h.Agreement.Dispute},
			})

			addRoutes(authed.Group("/fulfillments"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.Fulfillment.Schedule},
				{Method: http.MethodPost, Path: "/:id/start", Handler: h.Fulfillment.Start},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Fulfillment.Complete},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Fulfillment.Cancel},
				{Method: http.MethodPost, Path: "/:id/fail", Handler: h.Fulfillment.Fail},
			})

			addRoutes(authed.Group("/parties"), []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Party.Get},
			})

			addRoutes(authed.Group("/admin"), []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: h.Admin.RunSweep},
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
