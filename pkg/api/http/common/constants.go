package common

const (
	// API_JOBS is used to list or submit jobs
	API_JOBS = "/api/v1/jobs"

	// API_JOB is used to get or delete a single job
	API_JOB = "/api/v1/jobs/{id}"

	// API_CANCEL is used to cancel a pending or processing job
	API_CANCEL = "/api/v1/jobs/{id}/cancel"

	// API_RETRY is used to retry a failed job
	API_RETRY = "/api/v1/jobs/{id}/retry"

	// API_WORKBOARDS is used to list or create workboards
	API_WORKBOARDS = "/api/v1/workboards"

	// API_WORKBOARD is used to get a single workboard
	API_WORKBOARD = "/api/v1/workboards/{id}"

	// API_MEDIA is used to list media records
	API_MEDIA = "/api/v1/media"

	// MEDIA_FILES serves stored media bytes, by storage key
	MEDIA_FILES = "/media/"
)
