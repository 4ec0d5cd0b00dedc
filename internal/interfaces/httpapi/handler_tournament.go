package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

type createTournamentRequest struct {
	SeasonNumber     int              `json:"season_number" validate:"required,min=1"`
	NumGroups        int              `json:"num_groups" validate:"required,min=1"`
	NumTeamsPerGroup int              `json:"num_teams_per_group" validate:"required,min=2"`
	KnockoutMode     string           `json:"knockout_mode"`
	NumLegs          int              `json:"num_legs" validate:"required,min=1"`
	Groups           [][]string       `json:"groups" validate:"required,dive,dive,required"`
	CustomPairings   []pairingRequest `json:"custom_pairings" validate:"omitempty,dive"`
	Seed             *uint64          `json:"seed,omitempty"`
}

type pairingRequest struct {
	Home string `json:"home" validate:"required"`
	Away string `json:"away" validate:"required"`
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	items, err := h.tournamentService.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list tournaments failed", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentDTO, 0, len(items))
	for _, t := range items {
		out = append(out, tournamentToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var custom []bracket.PlaceholderPair
	if len(req.CustomPairings) > 0 {
		custom = make([]bracket.PlaceholderPair, 0, len(req.CustomPairings))
		for _, p := range req.CustomPairings {
			custom = append(custom, bracket.PlaceholderPair{Home: p.Home, Away: p.Away})
		}
	}

	t, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		SeasonNumber:     req.SeasonNumber,
		NumGroups:        req.NumGroups,
		NumTeamsPerGroup: req.NumTeamsPerGroup,
		KnockoutMode:     req.KnockoutMode,
		NumLegs:          req.NumLegs,
		Groups:           req.Groups,
		CustomPairings:   custom,
		Seed:             req.Seed,
	})
	if err != nil {
		h.logFailure(ctx, "create tournament failed", err, "season", req.SeasonNumber)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(t))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	t, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		h.logFailure(ctx, "get tournament failed", err, "tournament_id", tournamentID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(t))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	if err := h.tournamentService.Delete(ctx, tournamentID); err != nil {
		h.logFailure(ctx, "delete tournament failed", err, "tournament_id", tournamentID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteTournamentDTO{ID: tournamentID, Deleted: true})
}

func (h *Handler) GetTournamentReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentReport")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	report, err := h.reportService.Build(ctx, tournamentID)
	if err != nil {
		h.logFailure(ctx, "build tournament report failed", err, "tournament_id", tournamentID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportToDTO(report))
}

func (h *Handler) AutogenerateResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutogenerateResults")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	out, err := h.resultService.AutogenerateGroupResults(ctx, tournamentID)
	if err != nil {
		h.logFailure(ctx, "autogenerate results failed", err, "tournament_id", tournamentID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, autogenerateDTO{
		Generated:   out.Generated,
		Transitions: transitionsToStrings(out.Transitions),
	})
}
