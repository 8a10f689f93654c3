package constants

// ProcessingStatus is the terminal status of a per-file processing run.
type ProcessingStatus string

const (
	StatusSuccess ProcessingStatus = "success"
	StatusError   ProcessingStatus = "error"
)

// JobStatus tracks a processing job through its stages.
type JobStatus string

// Stable values (store these exact strings in the DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"     // waiting for processing
	JobStatusRunning   JobStatus = "RUNNING"    // in progress
	JobStatusTextOK    JobStatus = "TEXT_OK"    // stage 1 completed (raw text/rows acquired)
	JobStatusExtractOK JobStatus = "EXTRACT_OK" // stage 2 completed (structured data merged)
	JobStatusFailed    JobStatus = "FAILED"     // terminal failure
)
