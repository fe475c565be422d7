package structs

import (
	"strings"
)

type Status string

const (
	// transient states
	PENDING    Status = "pending"
	PROCESSING Status = "processing"

	// end states
	COMPLETED Status = "completed"
	FAILED    Status = "failed"
	CANCELLED Status = "cancelled"
)

// IsFinalStatus returns true for states a job can never leave.
func IsFinalStatus(status Status) bool {
	switch status {
	case COMPLETED, FAILED, CANCELLED:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the job state machine permits moving from -> to.
//
// pending -> processing -> {completed | failed | cancelled}, and pending may be cancelled
// directly. Re-entering processing from processing is permitted (a retried attempt).
func CanTransition(from, to Status) bool {
	switch from {
	case PENDING:
		return to == PROCESSING || to == CANCELLED || to == FAILED
	case PROCESSING:
		return to == PROCESSING || IsFinalStatus(to)
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToLower(s) {
	case "pending":
		return PENDING
	case "processing":
		return PROCESSING
	case "completed":
		return COMPLETED
	case "failed":
		return FAILED
	case "cancelled", "canceled":
		return CANCELLED
	default:
		return ""
	}
}
