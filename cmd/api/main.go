package main

import (
	"net/http"
	"os"
	"time"

	"shelter-feeding/internal/platform/logger"
	"shelter-feeding/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	lg := logger.NewFromEnv()

	r := router.NewRouter(router.Options{Logger: lg})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lg.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
