package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/abhisek/roadsign/internal/roadsign"
)

func addRoutes(r chi.Router, opts Options, svc *roadsign.Service, db Pinger, logger *slog.Logger) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Road Sign API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db, svc))

	r.Get("/sign-quizz", handleQuiz(logger, svc, roadsign.QuizSign))
	r.Get("/general-quizz", handleQuiz(logger, svc, roadsign.QuizGeneral))
	r.Get("/learn-sign", handleLearnSign(logger, svc))
	r.Post("/recognize-sign", handleRecognize(logger, svc, opts))
	r.Post("/quizz/{id}/answer", handleAnswer(logger, svc))

	r.Route("/users/{phone}", func(r chi.Router) {
		r.Put("/plan", handlePlan(logger, svc))
		r.Get("/stats", handleStats(logger, svc))
	})
}
