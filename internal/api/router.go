package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/erazemk/storeapi/internal/serializer"
)

// NewRouter creates the API router with all endpoints registered and the
// middleware chain applied.
func NewRouter(items ItemRepository, validator *serializer.Validator, log *zap.Logger) http.Handler {
	itemsHandler := &ItemsHandler{Items: items, Validator: validator, Log: log}

	r := mux.NewRouter()

	r.HandleFunc("/", itemsHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/list/", itemsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/", itemsHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/", itemsHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/{id:[0-9]+}/", itemsHandler.Delete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonError(log, w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonError(log, w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var handler http.Handler = r
	handler = Recovery(log)(handler)
	handler = LoggingMiddleware(log)(handler)
	handler = RequestID(handler)
	return handler
}
