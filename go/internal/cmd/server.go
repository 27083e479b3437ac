package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"

	"github.com/draftops/warroom/go/internal/gateway"
)

func setupServer(port string, service *gateway.Service) *http.Server {
	mux := http.NewServeMux()
	service.RegisterRoutes(mux)
	setupHealthCheck(mux)

	// the draft board UI runs on a different local port
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: c.Handler(mux),
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
