package models

// SubmissionResult is the single outward-facing outcome of one submission
// attempt. No submission ID is assigned here; the journal platform of
// record hands those out when the editor enters the manuscript.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
