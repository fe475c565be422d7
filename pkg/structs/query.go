package structs

const (
	queryLimitDefault = 100
	queryLimitMax     = 1000
)

type Query struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Filters
	JobIDs       []string `json:"job_ids,omitempty"`
	UserIDs      []string `json:"user_ids,omitempty"`
	WorkboardIDs []string `json:"workboard_ids,omitempty"`
	MediaIDs     []string `json:"media_ids,omitempty"`
	Statuses     []Status `json:"statuses,omitempty"`
}

func (q *Query) Sanitize() {
	if q.Limit <= 0 {
		q.Limit = queryLimitDefault
	}
	if q.Limit > queryLimitMax {
		q.Limit = queryLimitMax
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if len(q.JobIDs) == 0 {
		q.JobIDs = nil
	}
	if len(q.UserIDs) == 0 {
		q.UserIDs = nil
	}
	if len(q.WorkboardIDs) == 0 {
		q.WorkboardIDs = nil
	}
	if len(q.MediaIDs) == 0 {
		q.MediaIDs = nil
	}
	if len(q.Statuses) == 0 {
		q.Statuses = nil
	}
}
