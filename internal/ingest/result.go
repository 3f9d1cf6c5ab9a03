package ingest

// RecordFailure describes a single record that could not be persisted. It
// carries enough detail for an operator to triage the failure.
type RecordFailure struct {
	ExternalID string `json:"externalId"`
	Title      string `json:"title"`
	Error      string `json:"error"`
}

// Result is the per-batch outcome of an ingestion. Saved+Failed always
// equals Total, and Failures preserves the input order of failed records.
type Result struct {
	Total    int             `json:"total"`
	Saved    int             `json:"saved"`
	Failed   int             `json:"failed"`
	Failures []RecordFailure `json:"failures"`
}

// addSaved tallies a successfully persisted record.
func (r *Result) addSaved() {
	r.Saved++
}

// addFailure tallies a failed record and appends its detail.
func (r *Result) addFailure(externalID, title, reason string) {
	r.Failed++
	r.Failures = append(r.Failures, RecordFailure{
		ExternalID: externalID,
		Title:      title,
		Error:      reason,
	})
}
