// internal/handler/workflow_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/omnibot/campaign-studio/internal/errors"
	"github.com/omnibot/campaign-studio/internal/model"
	"github.com/omnibot/campaign-studio/internal/workflow"
)

// WorkflowHandler exposes the single-operator authoring session over HTTP.
// Every mutating route responds with the fresh session snapshot so the UI
// never has to derive state on its own.
type WorkflowHandler struct {
	Controller *workflow.Controller
}

func (h *WorkflowHandler) writeSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Controller.Snapshot())
}

func writeWorkflowError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var empty *appErrors.EmptyQueryError
	var busy *appErrors.BusyError
	var transition *appErrors.InvalidTransitionError
	var malformed *appErrors.MalformedResponseError
	var unsupported *appErrors.UnsupportedChannelError
	var network *appErrors.NetworkError
	var publish *appErrors.PublishFailureError

	switch {
	case errors.As(err, &empty):
		status = http.StatusBadRequest
	case errors.As(err, &busy), errors.As(err, &transition):
		status = http.StatusConflict
	case errors.As(err, &malformed), errors.As(err, &unsupported),
		errors.As(err, &network), errors.As(err, &publish):
		status = http.StatusBadGateway
	}

	http.Error(w, err.Error(), status)
}

// GetWorkflowHandler handles GET /workflow
func (h *WorkflowHandler) GetWorkflowHandler(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w)
}

// StartCreateHandler handles POST /workflow/new
func (h *WorkflowHandler) StartCreateHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Controller.StartCreate(); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// SubmitQueryHandler handles POST /workflow/query
func (h *WorkflowHandler) SubmitQueryHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Controller.SubmitQuery(r.Context(), body.Query); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// AdvanceHandler handles POST /workflow/next
func (h *WorkflowHandler) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Controller.Advance(); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// BackHandler handles POST /workflow/back
func (h *WorkflowHandler) BackHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Controller.Back(); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// UpdateConfigHandler handles PUT /workflow/config
func (h *WorkflowHandler) UpdateConfigHandler(w http.ResponseWriter, r *http.Request) {
	var update model.ConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Controller.UpdateConfig(update); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// OpenConfirmHandler handles POST /workflow/confirm/open. Opening while the
// configuration is not ready is a no-op, not an error; the snapshot tells the
// UI whether the gate is armed.
func (h *WorkflowHandler) OpenConfirmHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Controller.OpenConfirm(); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// CancelConfirmHandler handles POST /workflow/confirm/cancel
func (h *WorkflowHandler) CancelConfirmHandler(w http.ResponseWriter, r *http.Request) {
	if !h.Controller.CancelConfirm() {
		http.Error(w, "cannot cancel while a publish is in progress", http.StatusConflict)
		return
	}
	h.writeSnapshot(w)
}

// ConfirmPublishHandler handles POST /workflow/confirm
func (h *WorkflowHandler) ConfirmPublishHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Controller.ConfirmPublish(r.Context()); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// GoToListHandler handles POST /workflow/list
func (h *WorkflowHandler) GoToListHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Controller.GoToList(); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.writeSnapshot(w)
}

// DismissNoticeHandler handles POST /workflow/dismiss
func (h *WorkflowHandler) DismissNoticeHandler(w http.ResponseWriter, r *http.Request) {
	h.Controller.DismissNotice()
	h.writeSnapshot(w)
}
