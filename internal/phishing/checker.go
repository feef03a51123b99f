package phishing

import (
	"context"

	"screenguard/internal/domain"
)

// StubChecker is the placeholder phishing classifier: every URL yields a
// fixed not-yet-implemented marker and no network call is made. It holds the
// component boundary open so a real classifier can replace it without
// touching the orchestrator.
type StubChecker struct{}

// NewStubChecker creates the placeholder checker.
func NewStubChecker() *StubChecker {
	return &StubChecker{}
}

// Check returns the fixed stub outcome for url.
func (*StubChecker) Check(_ context.Context, _ string) domain.DispatchOutcome {
	return domain.DispatchOutcome{"status": "phishing detection not yet implemented"}
}
