package structs

// SubmitRequest asks for a new generation job against a workboard.
type SubmitRequest struct {
	UserID      string   `json:"userId"`
	WorkboardID string   `json:"workboardId"`
	Priority    int      `json:"priority,omitempty"`
	MaxRetries  int      `json:"maxRetries,omitempty"`
	Input       JobInput `json:"inputData"`
}
