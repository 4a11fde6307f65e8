// internal/model/query_response.go
package model

// QueryResponse is the structured interpretation of a free-text campaign
// prompt. It is immutable once produced; a new query replaces it wholesale.
type QueryResponse struct {
	Channel        Channel `json:"channel"`
	TargetAudience string  `json:"target_audience"`
	Count          string  `json:"count"`
	ScheduledTime  string  `json:"scheduled_time,omitempty"`
}
