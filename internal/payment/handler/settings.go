package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/notify"
	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/settings"
	"paybyrd-bridge/internal/utils"

	"go.uber.org/zap"
)

// SettingsResponse carries masked secrets; see settings.Settings.Masked.
type SettingsResponse struct {
	Scope              int                `json:"scope"`
	Settings           *settings.Settings `json:"settings"`
	Overrides          settings.Overrides `json:"overrides"`
	WebhookProvisioned bool               `json:"webhookProvisioned,omitempty"`
	Messages           []string           `json:"messages,omitempty"`
}

type SaveSettingsRequest struct {
	Settings  *settings.Settings `json:"settings"`
	Overrides settings.Overrides `json:"overrides"`
}

// GetSettingsHandler handles GET /admin/settings?scope=N.
func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope, ok := h.requestScope(r)
	if !ok {
		utils.WriteJSONError(w, "invalid scope", http.StatusBadRequest)
		return
	}

	s, err := h.Settings.Load(ctx, scope)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load settings", zap.Int("scope", scope), zap.Error(err))
		utils.WriteJSONError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	overrides, err := h.Settings.LoadOverrides(ctx, scope)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load setting overrides", zap.Int("scope", scope), zap.Error(err))
		utils.WriteJSONError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, SettingsResponse{Scope: scope, Settings: s.Masked(), Overrides: overrides})
}

// SaveSettingsHandler handles POST /admin/settings?scope=N.
func (h *Handler) SaveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := locale.WithCulture(r.Context(), requestCulture(r))

	scope, ok := h.requestScope(r)
	if !ok {
		utils.WriteJSONError(w, "invalid scope", http.StatusBadRequest)
		return
	}

	var req SaveSettingsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil || req.Settings == nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.Configurator.Save(ctx, req.Settings, req.Overrides, scope)
	switch {
	case errors.Is(err, payment.ErrLiveAPIKeyRequired):
		msg := h.notice(ctx, notify.Error, locale.LiveAPIKeyRequired)
		utils.WriteJSONError(w, msg, http.StatusBadRequest)
		return
	case errors.Is(err, payment.ErrInvalidPolicy):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		logger.FromCtx(ctx).Error("failed to save settings", zap.Int("scope", scope), zap.Error(err))
		utils.WriteJSONError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	resp := SettingsResponse{
		Scope:              scope,
		Settings:           res.Settings.Masked(),
		Overrides:          res.Overrides,
		WebhookProvisioned: res.WebhookProvisioned,
	}
	for _, key := range res.Warnings {
		resp.Messages = append(resp.Messages, h.notice(ctx, notify.Warning, key))
	}
	resp.Messages = append(resp.Messages, h.notice(ctx, notify.Success, locale.SettingsSaved))

	utils.WriteJSON(w, http.StatusOK, resp)
}

// requestScope reads ?scope=, defaulting to the configured store scope.
func (h *Handler) requestScope(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("scope")
	switch v {
	case "":
		return h.Scope, true
	case "0":
		return 0, true
	}
	return utils.ParsePositiveInt(v)
}
