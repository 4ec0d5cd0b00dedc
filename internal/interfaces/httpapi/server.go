package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

func NewRouter(handler *Handler, serviceName string, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if serviceName == "" {
		serviceName = "tournament-engine"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerTournamentRoutes(mux, handler)
	registerFixtureRoutes(mux, handler)

	return RequestTracing(serviceName, RequestLogging(logger, recoverPanic(logger, mux)))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("POST /v1/tournaments", handler.CreateTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("DELETE /v1/tournaments/{tournamentID}", handler.DeleteTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/report", handler.GetTournamentReport)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/autogenerate", handler.AutogenerateResults)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/fixtures/{fixtureID}/result", handler.RecordFixtureResult)
}
