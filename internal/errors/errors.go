// internal/errors/errors.go
package appErrors

import "fmt"

// EmptyQueryError blocks submission locally; no interpretation request is made.
type EmptyQueryError struct{}

func (e *EmptyQueryError) Error() string {
	return "please enter a query"
}

func NewEmptyQuery() error {
	return &EmptyQueryError{}
}

// MalformedResponseError means the interpretation service answered but the
// body was missing a required field.
type MalformedResponseError struct {
	Field string
}

func (e *MalformedResponseError) Error() string {
	return "invalid response format from server"
}

func NewMalformedResponse(field string) error {
	return &MalformedResponseError{Field: field}
}

// UnsupportedChannelError carries the offending channel name from an
// otherwise well-formed interpretation.
type UnsupportedChannelError struct {
	Channel string
}

func (e *UnsupportedChannelError) Error() string {
	return fmt.Sprintf("unsupported channel %q: expected SMS or WhatsApp", e.Channel)
}

func NewUnsupportedChannel(channel string) error {
	return &UnsupportedChannelError{Channel: channel}
}

// NetworkError covers transport-level interpretation failures. Message is the
// server-supplied explanation when one was present.
type NetworkError struct {
	Message string
}

func (e *NetworkError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "something went wrong while processing your query, please try again"
}

func NewNetworkError(message string) error {
	return &NetworkError{Message: message}
}

// PublishFailureError is surfaced in the configure step; the campaign
// configuration is preserved for retry.
type PublishFailureError struct {
	Err error
}

func (e *PublishFailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to publish campaign: %v", e.Err)
	}
	return "something went wrong while starting the campaign, please try again"
}

func (e *PublishFailureError) Unwrap() error { return e.Err }

func NewPublishFailure(err error) error {
	return &PublishFailureError{Err: err}
}

// BusyError means another interpretation or publish request is still in
// flight for this session.
type BusyError struct {
	Op string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("another %s request is already in progress", e.Op)
}

func NewBusy(op string) error {
	return &BusyError{Op: op}
}

// InvalidTransitionError reports an action that is not available from the
// current workflow state.
type InvalidTransitionError struct {
	State  string
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from the %s state", e.Action, e.State)
}

func NewInvalidTransition(state, action string) error {
	return &InvalidTransitionError{State: state, Action: action}
}
