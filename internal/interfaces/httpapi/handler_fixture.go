package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

type recordResultRequest struct {
	HomeGoals     *int `json:"home_goals" validate:"required,min=0"`
	AwayGoals     *int `json:"away_goals" validate:"required,min=0"`
	HomePenalties *int `json:"home_penalties,omitempty" validate:"omitempty,min=0"`
	AwayPenalties *int `json:"away_penalties,omitempty" validate:"omitempty,min=0"`
}

func (h *Handler) RecordFixtureResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordFixtureResult")
	defer span.End()

	fixtureID := r.PathValue("fixtureID")

	var req recordResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.resultService.RecordResult(ctx, usecase.RecordResultInput{
		FixtureID:     fixtureID,
		HomeGoals:     *req.HomeGoals,
		AwayGoals:     *req.AwayGoals,
		HomePenalties: req.HomePenalties,
		AwayPenalties: req.AwayPenalties,
	})
	if err != nil {
		h.logFailure(ctx, "record fixture result failed", err, "fixture_id", fixtureID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recordResultDTO{
		Fixture:     fixtureToDTO(out.Fixture, "", ""),
		Transitions: transitionsToStrings(out.Transitions),
	})
}
