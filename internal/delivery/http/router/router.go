package router

import (
	"net/http"

	"productos-api/internal/delivery/http/middleware"
	v1 "productos-api/internal/delivery/http/v1"

	"github.com/NYTimes/gziphandler"
)

type Options struct {
	AllowedOrigin string
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

// Routes registers every endpoint on a new mux.
func Routes(products *v1.ProductHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", v1.Health)

	// Catalog (Public)
	mux.HandleFunc("GET /products/search", products.SearchProducts)
	mux.HandleFunc("GET /products/{id}", products.GetProduct)

	// Product Management (Admin)
	mux.Handle("POST /productos", middleware.RequireAdmin(products.CreateProduct))
	mux.Handle("PUT /productos/{id}", middleware.RequireAdmin(products.UpdateProduct))
	mux.Handle("DELETE /productos/{id}", middleware.RequireAdmin(products.DeleteProduct))

	return mux
}

// New wraps the routes in CORS, panic recovery, request logging, rate limiting and gzip.
func New(products *v1.ProductHandler, opts Options) http.Handler {
	var handler http.Handler = Routes(products)
	handler = middleware.NewCORSMiddleware(opts.AllowedOrigin)(handler)
	handler = middleware.Recover(handler)
	handler = middleware.RequestLogger(handler)
	if opts.RateLimiter != nil {
		handler = opts.RateLimiter.Middleware()(handler)
	}
	return gziphandler.GzipHandler(handler)
}
