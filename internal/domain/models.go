package domain

import "time"

// AnalyzeRequest is the payload for the API. Either URL (single form) or
// URLs (batch form) is set; CompanyName and Location are optional hints.
type AnalyzeRequest struct {
	URL         string   `json:"url,omitempty"`
	URLs        []string `json:"urls,omitempty"`
	CompanyName string   `json:"company_name,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// AnalysisRequest is a single validated unit of work. Immutable once built.
type AnalysisRequest struct {
	URL         string
	CompanyName string
	Location    string
}

// RawPage is the fetch result handed to the website extractor.
type RawPage struct {
	HTML      string
	ByteSize  int64
	Status    int
	Truncated bool // body hit the size cap, page may be partial
}

// GreenHosting is a tri-state hosting indicator.
type GreenHosting int

const (
	HostingUnknown GreenHosting = iota
	HostingGreen
	HostingNotGreen
)

func (g GreenHosting) String() string {
	switch g {
	case HostingGreen:
		return "green"
	case HostingNotGreen:
		return "not_green"
	default:
		return "unknown"
	}
}

// WebsiteSignals holds everything extracted from one fetched page.
// FoundKeywords is deduplicated, in document order.
type WebsiteSignals struct {
	Title           string       `json:"title"`
	MetaDescription string       `json:"meta_description"`
	FoundKeywords   []string     `json:"found_keywords"`
	ReportLinks     []string     `json:"report_links"`
	HostingGreen    GreenHosting `json:"-"`
	Hosting         string       `json:"hosting"`
	PageWeightBytes int64        `json:"page_weight_bytes"`
	Truncated       bool         `json:"truncated,omitempty"`
	CarbonGrams     float64      `json:"carbon_grams"`
}

// Sentiment classification for a single news mention.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Mention is one classified news headline.
type Mention struct {
	Headline  string    `json:"headline"`
	Sentiment Sentiment `json:"sentiment"`
}

// ReputationSignals carries classified news mentions. Available is false when
// no company name was supplied or the news collaborator failed; that is a
// designed degradation, not an error.
type ReputationSignals struct {
	Available       bool      `json:"available"`
	Mentions        []Mention `json:"mentions,omitempty"`
	ControversyFlag bool      `json:"controversy_flag"`
}

// ReputationUnavailable is the explicit degraded variant.
func ReputationUnavailable() ReputationSignals {
	return ReputationSignals{Available: false}
}

// RiskTier is the jurisdiction risk classification.
type RiskTier string

const (
	TierLow     RiskTier = "LOW"
	TierMedium  RiskTier = "MEDIUM"
	TierHigh    RiskTier = "HIGH"
	TierUnknown RiskTier = "UNKNOWN"
)

// LocationSignals is the result of the static jurisdiction lookup.
type LocationSignals struct {
	RiskTier          RiskTier `json:"risk_tier"`
	JurisdictionNotes []string `json:"jurisdiction_notes,omitempty"`
}

// CategoryScores are the four weighted sub-scores, each clamped to [0,100].
type CategoryScores struct {
	Carbon     int `json:"carbon"`
	Reputation int `json:"reputation"`
	Location   int `json:"location"`
	Policy     int `json:"policy"`
}

// RawSignals is the full audit trail kept on every result.
type RawSignals struct {
	Website    WebsiteSignals    `json:"website"`
	Reputation ReputationSignals `json:"reputation"`
	Location   LocationSignals   `json:"location"`
}

// AnalysisResult is the unit returned to the caller and archived for export.
// Immutable after construction.
type AnalysisResult struct {
	URL        string         `json:"url"`
	Scores     CategoryScores `json:"scores"`
	Total      int            `json:"score"`
	Highlights []string       `json:"highlights"`
	Risks      []string       `json:"risks"`
	Summary    string         `json:"summary"`
	Raw        RawSignals     `json:"raw"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

// Failure records one request that could not be analyzed.
type Failure struct {
	URL    string `json:"url"`
	Reason string `json:"error"`
}

// Outcome is one entry of a BatchResult: exactly one of Result or Failure set.
type Outcome struct {
	Request AnalysisRequest
	Result  *AnalysisResult
	Failure *Failure
}

// BatchResult preserves input request order regardless of completion order.
type BatchResult struct {
	Outcomes []Outcome
}

// Failed reports whether every outcome in the batch is a failure.
func (b BatchResult) Failed() bool {
	for _, o := range b.Outcomes {
		if o.Result != nil {
			return false
		}
	}
	return len(b.Outcomes) > 0
}
