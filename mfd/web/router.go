package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	appMiddleware "github.com/Chengetanaim/MedicalFraudDetectionBackend/middleware"
	"github.com/Chengetanaim/MedicalFraudDetectionBackend/mfd/logging"
)

// NewAPIRouter provides a router with all the required... routes
func NewAPIRouter(api *API) http.Handler {
	r := chi.NewRouter()
	r.Use(
		appMiddleware.NewTransactionID,
		logging.NewStructuredLogger(),
		render.SetContentType(render.ContentTypeJSON),
		SecurityHeader,
		ConnectionClose,
	)

	r.Post("/predict", api.SubmitClaim)
	r.Get("/", api.ListClaims)

	r.Get("/_version", api.GetVersion)
	r.Get("/_health", api.HealthCheck)
	return r
}
