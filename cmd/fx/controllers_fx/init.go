package controllers_fx

import (
	"go.uber.org/fx"
	"tripwise/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewCreditController),
	fx.Provide(controllers.NewTripPlanController))
