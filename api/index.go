package handler

import (
	"hotelbook/config"
	"hotelbook/di"
	"hotelbook/shared/logger"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	service     http.Handler
	serviceOnce sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	serviceOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		srv, _, err := di.InitializeService()
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize service")

			return
		}

		service = srv
	})

	if service == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)

		return
	}

	service.ServeHTTP(w, r)
}
