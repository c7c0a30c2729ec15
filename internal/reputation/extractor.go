package reputation

import (
	"context"
	"regexp"
	"strings"

	"analyzer/internal/domain"
	"analyzer/internal/news"
	"analyzer/internal/taxonomy"

	"go.uber.org/zap"
)

// Extractor queries the news collaborator for a company name and classifies
// each headline's sentiment with the taxonomy lexicon.
type Extractor struct {
	searcher    news.Searcher
	positive    []*regexp.Regexp
	negative    []*regexp.Regexp
	controversy []*regexp.Regexp
	maxResults  int
	logger      *zap.Logger
}

func NewExtractor(searcher news.Searcher, tax *taxonomy.Taxonomy, logger *zap.Logger) *Extractor {
	return &Extractor{
		searcher:    searcher,
		positive:    compileLexicon(tax.Sentiment.Positive),
		negative:    compileLexicon(tax.Sentiment.Negative),
		controversy: compileLexicon(tax.Controversy),
		maxResults:  5,
		logger:      logger,
	}
}

func compileLexicon(terms []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(terms))
	for _, t := range terms {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(strings.ToLower(t))+`\b`))
	}
	return res
}

// Extract returns classified mentions for companyName. An empty name or a
// collaborator failure yields the explicit unavailable variant; neither is an
// error for the overall analysis.
func (e *Extractor) Extract(ctx context.Context, companyName string) domain.ReputationSignals {
	if companyName == "" || e.searcher == nil {
		return domain.ReputationUnavailable()
	}

	resp, err := e.searcher.Search(ctx, &news.Request{
		Query:      companyName + " environment sustainability",
		Topic:      "news",
		MaxResults: e.maxResults,
	})
	if err != nil {
		e.logger.Warn("news search unavailable",
			zap.String("company", companyName), zap.Error(err))
		return domain.ReputationUnavailable()
	}

	signals := domain.ReputationSignals{Available: true, Mentions: []domain.Mention{}}
	for _, r := range resp.Results {
		sentiment := e.classify(r.Title)
		signals.Mentions = append(signals.Mentions, domain.Mention{
			Headline:  r.Title,
			Sentiment: sentiment,
		})
		if sentiment == domain.SentimentNegative && matchesAny(e.controversy, r.Title) {
			signals.ControversyFlag = true
		}
	}
	return signals
}

// classify counts lexicon hits over the headline. Negative wins ties; no
// hits at all is neutral.
func (e *Extractor) classify(headline string) domain.Sentiment {
	pos := countHits(e.positive, headline)
	neg := countHits(e.negative, headline)
	switch {
	case neg > 0 && neg >= pos:
		return domain.SentimentNegative
	case pos > 0:
		return domain.SentimentPositive
	default:
		return domain.SentimentNeutral
	}
}

func countHits(lexicon []*regexp.Regexp, s string) int {
	n := 0
	for _, re := range lexicon {
		if re.MatchString(s) {
			n++
		}
	}
	return n
}

func matchesAny(lexicon []*regexp.Regexp, s string) bool {
	for _, re := range lexicon {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
