// internal/interpreter/client.go
package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/omnibot/campaign-studio/internal/errors"
	"github.com/omnibot/campaign-studio/internal/model"
)

// Client talks to the external interpretation service that turns a free-text
// campaign prompt into a structured QueryResponse.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Interpret performs a single request to the interpretation endpoint. The
// raw response is validated before anything is returned: required fields must
// be present and the channel must parse to a supported value.
func (c *Client) Interpret(ctx context.Context, prompt string) (*model.QueryResponse, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, appErrors.NewEmptyQuery()
	}

	payload, err := json.Marshal(map[string]string{"query": prompt})
	if err != nil {
		return nil, appErrors.NewNetworkError("")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/shopify_query", bytes.NewReader(payload))
	if err != nil {
		return nil, appErrors.NewNetworkError("")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, appErrors.NewNetworkError("")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var fail struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&fail)
		return nil, appErrors.NewNetworkError(fail.Message)
	}

	var raw struct {
		Channel        string `json:"channel"`
		TargetAudience string `json:"target_audience"`
		Count          string `json:"count"`
		ScheduledTime  string `json:"scheduled_time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, appErrors.NewMalformedResponse("body")
	}

	switch {
	case raw.Channel == "":
		return nil, appErrors.NewMalformedResponse("channel")
	case raw.TargetAudience == "":
		return nil, appErrors.NewMalformedResponse("target_audience")
	case raw.Count == "":
		return nil, appErrors.NewMalformedResponse("count")
	}

	channel, ok := model.ParseChannel(raw.Channel)
	if !ok {
		return nil, appErrors.NewUnsupportedChannel(raw.Channel)
	}

	return &model.QueryResponse{
		Channel:        channel,
		TargetAudience: raw.TargetAudience,
		Count:          raw.Count,
		ScheduledTime:  raw.ScheduledTime,
	}, nil
}
