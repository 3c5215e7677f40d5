package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middlewares.Language)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Get("/debug/mutations/{id}", handler.MutationStatus)

	r.Route("/api", func(r chi.Router) {
		r.Use(handler.withSession)

		r.Get("/settings", handler.Settings)
		r.Get("/countries", handler.Countries)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handler.Login)
			r.Post("/register", handler.Register)
			r.Post("/logout", handler.Logout)
		})

		r.Route("/workshops", func(r chi.Router) {
			r.Get("/", handler.ListWorkshops)
			r.Post("/join", handler.JoinWorkshop)
			r.Get("/{id}", handler.GetWorkshop)
			r.Post("/{id}/subscribe", handler.Subscribe)
		})

		r.Route("/boutique", func(r chi.Router) {
			r.Get("/products", handler.ListProducts)
			r.Get("/cart", handler.GetCart)
			r.Post("/cart/items", handler.AddCartItem)
			r.Patch("/cart/items/{id}", handler.UpdateCartItem)
			r.Delete("/cart/items/{id}", handler.RemoveCartItem)
			r.Post("/checkout/summary", handler.CheckoutSummary)
			r.Put("/checkout/payment-method", handler.SelectPaymentMethod)
			r.Post("/checkout/back", handler.CheckoutBack)
			r.Post("/checkout/submit", handler.SubmitOrder)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", handler.Profile)
			r.Get("/suggestions", handler.Suggestions)
			r.Post("/reviews", handler.SubmitReview)
			r.Get("/subscriptions/{id}/{kind}", handler.Download)
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/gallery", handler.Gallery)
			r.Get("/partners", handler.Partners)
			r.Get("/partners/{id}", handler.Partner)
			r.Get("/reviews", handler.Reviews)
			r.Get("/videos", handler.Videos)
			r.Get("/instagram-lives", handler.InstagramLives)
		})

		r.Post("/consultations", handler.RequestConsultation)
	})

	return otelhttp.NewHandler(r, "storefront")
}
