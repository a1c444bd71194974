package domain

// LoadStatus tracks the lifecycle of an asynchronous fetch.
type LoadStatus string

const (
	StatusIdle      LoadStatus = "idle"
	StatusLoading   LoadStatus = "loading"
	StatusSucceeded LoadStatus = "succeeded"
	StatusFailed    LoadStatus = "failed"
)

// IsValid checks if the status is one of the known values.
func (s LoadStatus) IsValid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}

// IsSettled reports whether a fetch has finished, successfully or not.
func (s LoadStatus) IsSettled() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String returns the string representation of the status.
func (s LoadStatus) String() string {
	return string(s)
}
