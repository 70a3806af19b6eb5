package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"checkout/internal/order/controller"
)

func NewRouter(checkoutCtrl *controller.CheckoutController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/orders/{family}", func(r chi.Router) {
		r.Post("/checkout", checkoutCtrl.Checkout)
		r.Get("/{orderNumber}", checkoutCtrl.GetOrder)
	})

	return r
}
