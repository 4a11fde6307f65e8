// internal/workflow/controller.go
package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/omnibot/campaign-studio/internal/errors"
	"github.com/omnibot/campaign-studio/internal/model"
)

// Interpreter turns a free-text prompt into a structured QueryResponse.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (*model.QueryResponse, error)
}

// Publisher commits a confirmed campaign for delivery. One call, success or
// failure, no intermediate progress.
type Publisher interface {
	Publish(ctx context.Context, campaign model.Campaign, cfg model.CampaignConfig) error
}

// Controller owns all workflow state for one operator session and sequences
// query interpretation, channel configuration, confirmation, publish and the
// timed return to the list. All mutation happens under one lock; the only
// await points are the interpretation and publish calls, which run outside
// the lock with the busy permit held.
type Controller struct {
	mu       sync.Mutex
	state    State
	session  uint64
	response *model.QueryResponse
	gate     ConfirmationGate
	notice   string

	busy  busyGuard
	timer *RedirectTimer

	interpreter Interpreter
	publisher   Publisher
	now         func() time.Time
}

func NewController(i Interpreter, p Publisher, redirectTick time.Duration) *Controller {
	if redirectTick <= 0 {
		redirectTick = time.Second
	}
	return &Controller{
		state:       ListState{},
		busy:        newBusyGuard(),
		timer:       NewRedirectTimer(redirectTick),
		interpreter: i,
		publisher:   p,
		now:         time.Now,
	}
}

// StartCreate begins a fresh campaign from the list. Any leftovers from a
// previous run are reset so no stale state crosses the boundary.
func (c *Controller) StartCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.state.(ListState); !ok {
		return appErrors.NewInvalidTransition(c.state.Name(), "start a new campaign")
	}
	c.session++
	c.state = CreateState{}
	c.response = nil
	c.notice = ""
	c.gate = ConfirmationGate{}
	return nil
}

// SubmitQuery sends the prompt to the interpretation service and stores the
// structured response. The state stays in create; failures clear the response
// and surface a notice. At most one interpretation is in flight per session.
func (c *Controller) SubmitQuery(ctx context.Context, prompt string) error {
	c.mu.Lock()
	if _, ok := c.state.(CreateState); !ok {
		stateName := c.state.Name()
		c.mu.Unlock()
		return appErrors.NewInvalidTransition(stateName, "submit a query")
	}
	if strings.TrimSpace(prompt) == "" {
		err := appErrors.NewEmptyQuery()
		c.notice = err.Error()
		c.mu.Unlock()
		return err
	}
	if !c.busy.TryAcquire() {
		c.mu.Unlock()
		return appErrors.NewBusy("interpretation")
	}
	c.notice = ""
	session := c.session
	c.mu.Unlock()

	resp, err := c.interpreter.Interpret(ctx, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy.Release()
	// The operator may have navigated away, or navigated away and started
	// over, while the request was in flight. A late response only applies
	// to the session that issued it, and only while it is still in create.
	if _, still := c.state.(CreateState); !still || session != c.session {
		return err
	}
	if err != nil {
		c.response = nil
		c.notice = err.Error()
		return err
	}
	c.response = resp
	return nil
}

// Advance moves from create to configure. It requires an interpreted
// response; the channel was already validated before the response was stored.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.state.(CreateState); !ok {
		return appErrors.NewInvalidTransition(c.state.Name(), "advance to configuration")
	}
	if c.response == nil {
		return appErrors.NewInvalidTransition("create", "advance without an interpreted query")
	}
	c.state = ConfigureState{
		Response: *c.response,
		Config:   model.NewCampaignConfig(c.response.Channel),
	}
	c.notice = ""
	return nil
}

// Back returns from configure to a blank query form, discarding the
// in-progress configuration and the interpreted response.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.state.(ConfigureState); !ok {
		return appErrors.NewInvalidTransition(c.state.Name(), "go back to the query")
	}
	if c.gate.IsPublishing() {
		return appErrors.NewBusy("publish")
	}
	c.gate = ConfirmationGate{}
	c.state = CreateState{}
	c.response = nil
	c.notice = ""
	return nil
}

// UpdateConfig applies one round of field edits. Validity never blocks entry;
// it only gates the confirmation trigger.
func (c *Controller) UpdateConfig(u model.ConfigUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.state.(ConfigureState)
	if !ok {
		return appErrors.NewInvalidTransition(c.state.Name(), "edit the configuration")
	}
	s.Config = s.Config.WithUpdate(u)
	c.state = s
	return nil
}

// OpenConfirm arms the confirmation gate. Opening is a no-op when the
// configuration is not ready.
func (c *Controller) OpenConfirm() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.state.(ConfigureState)
	if !ok {
		return false, appErrors.NewInvalidTransition(c.state.Name(), "open the confirmation")
	}
	return c.gate.Open(s.Config.Ready()), nil
}

// CancelConfirm dismisses the gate. It reports false while a publish request
// is outstanding; cancellation is disabled until it completes.
func (c *Controller) CancelConfirm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gate.Cancel()
}

// ConfirmPublish runs the confirmed publish. On success the controller moves
// to the success state, clears the response and configuration in the same
// critical section, and starts the redirect countdown. On failure it stays in
// configure with everything intact so the operator can retry.
func (c *Controller) ConfirmPublish(ctx context.Context) error {
	c.mu.Lock()
	s, ok := c.state.(ConfigureState)
	if !ok {
		stateName := c.state.Name()
		c.mu.Unlock()
		return appErrors.NewInvalidTransition(stateName, "publish")
	}
	if !c.gate.BeginPublish() {
		c.mu.Unlock()
		return appErrors.NewInvalidTransition("configure", "publish without confirmation")
	}
	if !c.busy.TryAcquire() {
		c.gate.AbortPublish()
		c.mu.Unlock()
		return appErrors.NewBusy("publish")
	}

	campaign := model.Campaign{
		ID:             uuid.NewString(),
		Name:           s.Config.CampaignName(),
		Channel:        s.Response.Channel,
		TargetAudience: s.Response.TargetAudience,
		Count:          s.Response.Count,
		DeliveryStatus: model.DeliveryPending,
		CreatedAt:      c.now(),
	}
	if s.Response.ScheduledTime != "" {
		scheduled := s.Response.ScheduledTime
		campaign.ScheduledTime = &scheduled
	}
	c.mu.Unlock()

	err := c.publisher.Publish(ctx, campaign, s.Config)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy.Release()
	c.gate.FinishPublish()
	if err != nil {
		if _, ok := err.(*appErrors.PublishFailureError); !ok {
			err = appErrors.NewPublishFailure(err)
		}
		c.notice = err.Error()
		return err
	}

	c.state = SuccessState{Campaign: campaign, Countdown: RedirectTicks}
	c.response = nil
	c.notice = ""
	c.timer.Start(c.onRedirectTick, c.onRedirectExpire)
	return nil
}

// GoToList navigates back to the campaign list from anywhere, cancelling the
// redirect countdown and clearing session state. From the list it is a no-op.
func (c *Controller) GoToList() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.(type) {
	case ListState:
		return nil
	case ConfigureState:
		if c.gate.IsPublishing() {
			return appErrors.NewBusy("publish")
		}
	}
	c.timer.Stop()
	c.gate = ConfirmationGate{}
	c.state = ListState{}
	c.response = nil
	c.notice = ""
	return nil
}

// DismissNotice clears the visible error message.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = ""
}

func (c *Controller) onRedirectTick(remaining int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// A tick racing a manual navigation loses: it only applies while the
	// success state is still active.
	if s, ok := c.state.(SuccessState); ok {
		s.Countdown = remaining
		c.state = s
	}
}

func (c *Controller) onRedirectExpire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Same rule as ticks: an expiry that lost the race against a manual
	// navigation must not touch whatever state the operator is in now.
	if _, ok := c.state.(SuccessState); !ok {
		return
	}
	c.state = ListState{}
	c.response = nil
	c.notice = ""
}

// Snapshot is a read-only view of the session for the HTTP surface.
type Snapshot struct {
	State       string               `json:"state"`
	Busy        bool                 `json:"busy"`
	Notice      string               `json:"notice,omitempty"`
	Response    *model.QueryResponse `json:"query_response,omitempty"`
	Config      model.CampaignConfig `json:"config,omitempty"`
	ConfigReady bool                 `json:"config_ready"`
	ConfirmOpen bool                 `json:"confirm_open"`
	Countdown   int                  `json:"countdown,omitempty"`
	Campaign    *model.Campaign      `json:"campaign,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:       c.state.Name(),
		Busy:        c.busy.Held(),
		Notice:      c.notice,
		ConfirmOpen: c.gate.IsOpen(),
	}
	switch s := c.state.(type) {
	case CreateState:
		snap.Response = c.response
	case ConfigureState:
		resp := s.Response
		snap.Response = &resp
		snap.Config = s.Config
		snap.ConfigReady = s.Config.Ready()
	case SuccessState:
		campaign := s.Campaign
		snap.Campaign = &campaign
		snap.Countdown = s.Countdown
	}
	return snap
}

// CurrentState exposes the active state variant, mainly for tests.
func (c *Controller) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
