// internal/handler/campaign_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/omnibot/campaign-studio/internal/model"
	"github.com/omnibot/campaign-studio/internal/repository"
)

// CampaignHandler serves the read-only list projection of published
// campaigns. Filtering is a non-destructive read: name substring plus exact
// channel match.
type CampaignHandler struct {
	Repo repository.CampaignRepositoryInterface
}

// ListCampaignsHandler handles GET /campaigns?search=&channel=
func (h *CampaignHandler) ListCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	var channel model.Channel
	if raw := r.URL.Query().Get("channel"); raw != "" && raw != "all" {
		parsed, ok := model.ParseChannel(raw)
		if !ok {
			http.Error(w, "invalid channel filter: "+raw, http.StatusBadRequest)
			return
		}
		channel = parsed
	}

	campaigns, err := h.Repo.List(search, channel)
	if err != nil {
		http.Error(w, "failed to fetch campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": campaigns,
	})
}
