package httpserver

import (
	"auris-notifier/internal/middleware"
	relayHTTP "auris-notifier/internal/relay/delivery/http"
)

func (srv *HTTPServer) mapHandlers() {
	srv.gin.Use(middleware.Logger(srv.logger), middleware.Recovery(srv.logger, srv.discord))

	srv.gin.GET("/health", srv.healthCheck)

	h := relayHTTP.New(srv.relayUC, srv.verifier, srv.logger, srv.requireToken)
	if srv.limiter != nil {
		h.SetRateLimiter(srv.limiter)
	}
	h.RegisterRoutes(srv.gin)
}
