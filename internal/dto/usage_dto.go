package dto

import "fmt"

type UsageResponse struct {
	Count        int    `json:"count"`
	Date         string `json:"date"`
	Limit        int    `json:"limit"`
	LimitReached bool   `json:"limit_reached"`
}

// LimitExceededError is a checked precondition, not a collaborator failure:
// the think-longer action is blocked before any request is attempted.
type LimitExceededError struct {
	Limit int    `json:"limit"`
	Used  int    `json:"used"`
	Date  string `json:"date"`
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("daily think-longer limit reached (%d/%d used on %s)", e.Used, e.Limit, e.Date)
}
