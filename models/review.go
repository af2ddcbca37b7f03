package models

import "time"

// Sentiment is the closed set of polarity labels the analysis engine may
// attach to a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether the sentiment is one of the known values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Review is a product review under analysis.
//
// UserID references the account that ingested the review. The reference is
// weak: deleting the user detaches the review (UserID becomes nil), the
// review itself is kept.
//
// Sentiment, IsFake, DetectionConfidence, ConfidenceReason and AnalyzedAt
// are written once by the external detection engine via
// RecordAnalysisResult; the rest of the record is immutable after ingest.
type Review struct {
	ID int64 `json:"id"`

	// UserID is the weak owner reference. Nil for detached reviews.
	UserID *int64 `json:"user_id,omitempty"`

	ProductName string `json:"product_name,omitempty"`

	// ReviewText is the raw review body. Required.
	ReviewText string `json:"review_text"`

	// Rating is the star rating, 1..5 inclusive when present.
	Rating *int64 `json:"rating,omitempty"`

	// Sentiment is empty until an analysis result is recorded.
	Sentiment Sentiment `json:"sentiment,omitempty"`

	Category string `json:"category,omitempty"`

	// IsFake marks reviews the detection engine flagged as fabricated.
	IsFake bool `json:"is_fake"`

	// DetectionConfidence is the engine's confidence score. The source
	// schema places no range constraint on it, so neither do we.
	DetectionConfidence *float64 `json:"detection_confidence,omitempty"`

	// Source tags where the review was ingested from (upload, api, ...).
	Source string `json:"source,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// AnalyzedAt is set by the persistence layer when an analysis result
	// is recorded. Nil for unanalyzed reviews.
	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`

	// ConfidenceReason is the engine's free-text rationale.
	ConfidenceReason string `json:"confidence_reason,omitempty"`
}

// TableName returns the name of the database table
// associated with the Review model.
func (r Review) TableName() string {
	return "reviews"
}

// AnalysisResult is the outcome the external detection engine delivers for
// a single review. The engine itself is an opaque collaborator; only the
// shape of its output is known here.
type AnalysisResult struct {
	Sentiment           Sentiment `json:"sentiment"`
	IsFake              bool      `json:"is_fake"`
	DetectionConfidence float64   `json:"detection_confidence"`
	ConfidenceReason    string    `json:"confidence_reason,omitempty"`
}
