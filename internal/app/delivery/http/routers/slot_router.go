package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSlotRoutes(router chi.Router, middlewares *middlewares.Middlewares, slotController *controllers.SlotController) {
	router.With(middlewares.Authenticate).Get("/{doctorId}/slots", slotController.ListAvailableSlots)
}
