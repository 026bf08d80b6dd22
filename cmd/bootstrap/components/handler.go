package components

import (
	"rentalflow/internal/handler"
	"rentalflow/internal/handler/api"
	"rentalflow/internal/handler/middleware"
	"rentalflow/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewIntentHandler,
		api.NewOfferHandler,
		api.NewAgreementHandler,
		api.NewFulfillmentHandler,
		api.NewCatalogHandler,
		api.NewPartyHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(setupRouter),
)

func setupRouter(
	engine *gin.Engine,
	cfg config.Config,
	intent *api.IntentHandler,
	offer *api.OfferHandler,
	agreement *api.AgreementHandler,
	fulfillment *api.FulfillmentHandler,
	catalog *api.CatalogHandler,
	party *api.PartyHandler,
	admin *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	handler.NewRouter(engine, cfg, handler.Handlers{
		Intent:      intent,
		Offer:       offer,
		Agreement:   agreement,
		Fulfillment: fulfillment,
		Catalog:     catalog,
		Party:       party,
		Admin:       admin,
	}, authMiddleware)
}
