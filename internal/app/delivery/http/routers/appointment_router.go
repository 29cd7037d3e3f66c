package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", appointmentController.ListAppointments)
	router.With(middlewares.BookingRateLimit()).Post("/", appointmentController.CreateAppointment)
	router.Get("/{appointmentId}", appointmentController.GetAppointment)
	router.Patch("/{appointmentId}", appointmentController.UpdateAppointment)
}
