package recommend

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1/recommendations").Subrouter()

	api.HandleFunc("/pair", handler.GetPair).Methods("GET")
	api.HandleFunc("/events", handler.GetEvents).Methods("GET")
	api.HandleFunc("/interactions", handler.RecordInteraction).Methods("POST")
}
