package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solevibe/solevibe-backend/api/controllers"
	"github.com/solevibe/solevibe-backend/api/middleware"
	"github.com/solevibe/solevibe-backend/internal/cart"
	"github.com/solevibe/solevibe-backend/internal/catalog"
	checkoutsvc "github.com/solevibe/solevibe-backend/internal/checkout"
	"github.com/solevibe/solevibe-backend/internal/events"
	"github.com/solevibe/solevibe-backend/internal/giftcards"
	"github.com/solevibe/solevibe-backend/internal/ratings"
	"github.com/solevibe/solevibe-backend/internal/wishlist"
	"github.com/solevibe/solevibe-backend/pkg/config"
	"github.com/solevibe/solevibe-backend/pkg/db"
	"github.com/solevibe/solevibe-backend/pkg/logger"
	pkgredis "github.com/solevibe/solevibe-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	gatherer prometheus.Gatherer,
	catalogService catalog.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	wishlistService wishlist.Service,
	giftCardService giftcards.Service,
	eventsService events.Service,
	ratingsService ratings.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	checkoutPolicy := middleware.NewCheckoutRateLimitPolicy(cfg.Checkout)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.StorefrontToken(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/categories", controllers.ProductCategories(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
			r.Get("/{productId}/rating", controllers.RatingFetch(ratingsService, logg))
			r.Put("/{productId}/rating", controllers.RatingUpsert(ratingsService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{index}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{index}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.CheckoutRateLimit(checkoutPolicy, redisClient, logg))
			r.Post("/", controllers.CheckoutBegin(checkoutService, logg))
			r.Get("/", controllers.CheckoutPending(checkoutService, logg))
			r.Post("/complete", controllers.CheckoutComplete(checkoutService, logg))
			r.Post("/cancel", controllers.CheckoutCancel(checkoutService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(wishlistService, logg))
			r.Post("/items", controllers.WishlistAdd(wishlistService, logg))
			r.Delete("/items/{productId}", controllers.WishlistRemove(wishlistService, logg))
		})

		r.Route("/gift-cards", func(r chi.Router) {
			r.Get("/", controllers.GiftCardCatalog(giftCardService, logg))
			r.Post("/quote", controllers.GiftCardQuote(giftCardService, logg))
			r.Post("/add-to-cart", controllers.GiftCardAddToCart(giftCardService, logg))
			r.Get("/draft", controllers.GiftCardDraftFetch(giftCardService, logg))
			r.Put("/draft", controllers.GiftCardDraftSave(giftCardService, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.EventList(eventsService, logg))
			r.Get("/saved", controllers.EventSavedList(eventsService, logg))
			r.Post("/saved/{eventId}", controllers.EventSave(eventsService, logg))
			r.Delete("/saved/{eventId}", controllers.EventUnsave(eventsService, logg))
			r.Get("/{eventId}", controllers.EventDetail(eventsService, logg))
			r.Get("/{eventId}/countdown", controllers.EventCountdown(eventsService, logg))
		})
	})

	return r
}
