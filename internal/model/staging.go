package model

// ReviewPending is the review status of a freshly staged record.
const ReviewPending = "pending_review"

// StagingRecord is a parsed profile paired with its catalog match, waiting
// for human review before it is merged into the catalog.
type StagingRecord struct {
	ID              string        `json:"id"`
	Profile         ParsedProfile `json:"profile"`
	Match           MatchResult   `json:"match"`
	NeedsEnrichment bool          `json:"needsEnrichment"`
	ReviewStatus    string        `json:"reviewStatus"`
}
