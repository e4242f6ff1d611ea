package interfaces

import "time"

// TimeProvider supplies the current time and sleeping for readiness polling.
// Injected so tests can drive WaitForReady without real delays.
//
// Used by service.Instance.WaitForReady. Built with service.NewTimeProvider.
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
	// Sleep blocks for d. Non-positive durations return immediately.
	Sleep(d time.Duration)
}
