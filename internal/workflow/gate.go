// internal/workflow/gate.go
package workflow

// ConfirmationGate requires an explicit confirm before the publish runs.
// It is plain state owned by the controller and mutated under its lock.
type ConfirmationGate struct {
	open       bool
	publishing bool
}

// Open arms the gate. It is a no-op unless the configuration is ready and
// no publish is in flight.
func (g *ConfirmationGate) Open(ready bool) bool {
	if !ready || g.publishing {
		return false
	}
	g.open = true
	return true
}

// Cancel dismisses the gate. Dismissal is disabled while a publish request
// is outstanding so the operator cannot believe they cancelled a running one.
func (g *ConfirmationGate) Cancel() bool {
	if g.publishing {
		return false
	}
	g.open = false
	return true
}

// BeginPublish marks the confirmed publish as in flight.
func (g *ConfirmationGate) BeginPublish() bool {
	if !g.open || g.publishing {
		return false
	}
	g.publishing = true
	return true
}

// AbortPublish rolls a BeginPublish claim back when the request never left,
// leaving the gate open so the confirmation stays armed.
func (g *ConfirmationGate) AbortPublish() {
	g.publishing = false
}

// FinishPublish closes the gate once the publish attempt completed, on both
// the success and the failure path.
func (g *ConfirmationGate) FinishPublish() {
	g.publishing = false
	g.open = false
}

func (g *ConfirmationGate) IsOpen() bool       { return g.open }
func (g *ConfirmationGate) IsPublishing() bool { return g.publishing }
