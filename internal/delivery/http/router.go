package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tencoupons/slot-service/internal/delivery/http/handlers"
	"github.com/tencoupons/slot-service/internal/delivery/http/middleware"
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/usecase/display"
	"github.com/tencoupons/slot-service/internal/usecase/slot"
	"github.com/tencoupons/slot-service/internal/usecase/timeframe"
)

// NewRouter builds the HTTP router for the slot-service
func NewRouter(
	slotUsecase slot.SlotUsecase,
	frameUsecase timeframe.TimeFrameUsecase,
	displayUsecase display.DisplayUsecase,
	placements domain.FlyerPlacementRepository) http.Handler {

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	slotHandler := handlers.NewSlotHandler(slotUsecase, frameUsecase, placements)
	displayHandler := handlers.NewDisplayHandler(displayUsecase)

	r.Route("/slots", func(r chi.Router) {
		r.Post("/", slotHandler.CreateHeadSlot)
		r.Route("/{slotID}", func(r chi.Router) {
			r.Get("/", slotHandler.GetSlot)
			r.Post("/children", slotHandler.CreateChildSlot)
			r.Post("/renew", slotHandler.RenewSlot)
			r.Patch("/end-date", slotHandler.ChangeEndDate)
			r.Patch("/site", slotHandler.TransferSite)
			r.Patch("/autorenew", slotHandler.SetAutorenew)
			r.Get("/family", slotHandler.GetFamily)
			r.Get("/frames", slotHandler.ListFrames)
			r.Get("/active-coupon", slotHandler.GetActiveCoupon)
			r.Post("/flyer-placements", slotHandler.CreateFlyerPlacement)
		})
	})

	r.Get("/businesses/{businessID}/families", slotHandler.ListCurrentFamilies)

	r.Route("/display", func(r chi.Router) {
		r.Post("/on", displayHandler.TurnOn)
		r.Post("/off", displayHandler.TurnOff)
		r.Post("/renew", displayHandler.Renew)
		r.Post("/autorenew", displayHandler.SetAutorenew)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
