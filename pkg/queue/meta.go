package queue

// Meta includes the delivery information a handler needs to process a job.
type Meta struct {
	// JobID is the job being delivered
	JobID string

	// Retried is how many times this job has already been retried by the queue
	Retried int

	// MaxRetry is how many retries the queue will attempt before giving up
	MaxRetry int
}

// Attempt returns the 1-indexed attempt number of this delivery.
func (m *Meta) Attempt() int {
	return m.Retried + 1
}

// Final is true if the queue will not retry this job should this attempt fail.
func (m *Meta) Final() bool {
	return m.Retried >= m.MaxRetry
}
