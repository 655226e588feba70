package httpapi

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/roster-manager/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.rosterService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterService.CreatePlayer(ctx, usecase.CreatePlayerInput{
		Name:     req.Name,
		Position: req.Position,
		Club:     req.Club,
		Value:    req.Value,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) TransferPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferPlayer")
	defer span.End()

	index, err := playerIndexFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	newClub := strings.TrimSpace(r.URL.Query().Get("new_club"))
	fee, err := queryFloat(r, "transfer_money")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.TransferPlayer(ctx, index, newClub, fee)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer player failed", "index", index, "new_club", newClub, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) UpdatePlayerValue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerValue")
	defer span.End()

	index, err := playerIndexFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	amount, err := queryFloat(r, "amount")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.rosterService.AdjustPlayerValue(ctx, index, amount)
	if err != nil {
		h.logger.WarnContext(ctx, "adjust player value failed", "index", index, "amount", amount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	index, err := playerIndexFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, err := h.rosterService.RemovePlayer(ctx, index)
	if err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "index", index, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(removed))
}

func playerIndexFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("playerID"))
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: player id must be an integer index", usecase.ErrInvalidInput)
	}

	return index, nil
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %s is required", usecase.ErrInvalidInput, key)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be a number", usecase.ErrInvalidInput, key)
	}
	// ParseFloat accepts "NaN" and "Inf"; a non-finite value stored in the
	// roster would make every later list response unencodable.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: query parameter %s must be a finite number", usecase.ErrInvalidInput, key)
	}

	return value, nil
}
