package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leximap/internal/handlers/api"
)

// RegisterRoutes registers all application routes. probe may be nil.
func (s *Server) RegisterRoutes(assembler api.LexemeAssembler, probe api.RelationsStatus) {
	lexemeHandler := api.NewLexemeHandler(assembler, s.log)
	healthHandler := api.NewHealthHandler(s.Cfg.LexiconBackend, probe)

	// The word segment is optional so an empty word reaches the handler
	// and is answered with 400 instead of 404.
	s.App.Get("/lexeme/:word?", lexemeHandler.Get)

	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
