// internal/workflow/state.go
package workflow

import "github.com/omnibot/campaign-studio/internal/model"

// State is the operator's position in the authoring workflow. Exactly one
// variant is active at a time; variants carry only the data that exists in
// that position, so stale combinations are unrepresentable.
type State interface {
	Name() string
}

// ListState shows the campaign list.
type ListState struct{}

// CreateState shows the free-text query form. The interpreted response, if
// any, lives on the controller until the operator advances.
type CreateState struct{}

// ConfigureState holds the interpreted response and the in-progress
// channel configuration.
type ConfigureState struct {
	Response model.QueryResponse
	Config   model.CampaignConfig
}

// SuccessState shows the published campaign while the redirect countdown runs.
type SuccessState struct {
	Campaign  model.Campaign
	Countdown int
}

func (ListState) Name() string      { return "list" }
func (CreateState) Name() string    { return "create" }
func (ConfigureState) Name() string { return "configure" }
func (SuccessState) Name() string   { return "success" }
