// Package scoring combines the three signal records into category scores,
// a composite total, highlights, risks, and a summary sentence. Everything
// here is a pure function of its inputs: identical signals always produce
// identical output.
package scoring

import (
	"fmt"
	"math"

	"analyzer/internal/domain"
)

const (
	baseline           = 50
	maxListed          = 3
	keywordPoints      = 10
	keywordCap         = 40
	reportBonus        = 10
	opaqueSitePenalty  = 15
	greenHostingBonus  = 15
	dirtyHostingMalus  = 10
	positiveMention    = 5
	controversyPenalty = 15
)

// Composite weights. Carbon and policy are direct evidence from the
// company's own disclosures; reputation and location are proxies.
const (
	weightCarbon     = 0.30
	weightReputation = 0.20
	weightLocation   = 0.20
	weightPolicy     = 0.30
)

// Score computes the full scoring output for one analysis.
func Score(web domain.WebsiteSignals, rep domain.ReputationSignals, loc domain.LocationSignals) (domain.CategoryScores, int, []string, []string, string) {
	scores := domain.CategoryScores{
		Carbon:     carbonScore(web),
		Reputation: reputationScore(rep),
		Location:   locationScore(loc),
		Policy:     policyScore(web),
	}

	total := clamp(int(math.Round(
		weightCarbon*float64(scores.Carbon) +
			weightReputation*float64(scores.Reputation) +
			weightLocation*float64(scores.Location) +
			weightPolicy*float64(scores.Policy))))

	highlights := pickHighlights(scores, web, rep, loc)
	risks := pickRisks(scores, web, rep, loc)
	summary := summarize(total, scores)

	return scores, total, highlights, risks, summary
}

// carbonScore is a monotonic decreasing step function of page weight with a
// hosting adjustment.
func carbonScore(web domain.WebsiteSignals) int {
	var score int
	switch w := web.PageWeightBytes; {
	case w < 512*1024:
		score = 85
	case w < 1024*1024:
		score = 70
	case w < 2*1024*1024:
		score = 55
	case w < 4*1024*1024:
		score = 40
	default:
		score = 25
	}

	switch web.HostingGreen {
	case domain.HostingGreen:
		score += greenHostingBonus
	case domain.HostingNotGreen:
		score -= dirtyHostingMalus
	}
	return clamp(score)
}

func policyScore(web domain.WebsiteSignals) int {
	score := baseline

	contribution := len(web.FoundKeywords) * keywordPoints
	if contribution > keywordCap {
		contribution = keywordCap
	}
	score += contribution

	if len(web.ReportLinks) > 0 {
		score += reportBonus
	}
	if web.Title == "" && web.MetaDescription == "" {
		score -= opaqueSitePenalty
	}
	return clamp(score)
}

func reputationScore(rep domain.ReputationSignals) int {
	if !rep.Available {
		return baseline
	}
	score := baseline
	for _, m := range rep.Mentions {
		switch m.Sentiment {
		case domain.SentimentPositive:
			score += positiveMention
		case domain.SentimentNegative:
			score -= controversyPenalty
		}
	}
	return clamp(score)
}

func locationScore(loc domain.LocationSignals) int {
	switch loc.RiskTier {
	case domain.TierLow:
		return 80
	case domain.TierMedium:
		return 55
	case domain.TierHigh:
		return 25
	default:
		return baseline
	}
}

// candidate is one conditional statement for the highlight/risk lists. The
// order of the candidate tables below is the fixed priority order; it is
// what makes the selection deterministic and is locked by tests.
type candidate struct {
	when bool
	text string
}

func pickHighlights(scores domain.CategoryScores, web domain.WebsiteSignals, rep domain.ReputationSignals, loc domain.LocationSignals) []string {
	candidates := []candidate{
		{scores.Carbon >= 75, "Low estimated site carbon per page load"},
		{web.HostingGreen == domain.HostingGreen, "Website served from verified green hosting"},
		{len(web.ReportLinks) > 0, "Published sustainability reporting found"},
		{len(web.FoundKeywords) >= 3, "Broad sustainability vocabulary across site content"},
		{rep.Available && countPositive(rep) > 0 && !rep.ControversyFlag, "Positive environmental news coverage"},
		{loc.RiskTier == domain.TierLow, "Headquartered in a well-regulated, low-risk jurisdiction"},
	}
	return take(candidates)
}

func pickRisks(scores domain.CategoryScores, web domain.WebsiteSignals, rep domain.ReputationSignals, loc domain.LocationSignals) []string {
	candidates := []candidate{
		{rep.ControversyFlag, "Environmental controversy found in news coverage"},
		{len(web.FoundKeywords) == 0, "No sustainability-related keywords found on site"},
		{web.Title == "", "Missing site title"},
		{web.MetaDescription == "", "Missing meta description"},
		{web.HostingGreen == domain.HostingNotGreen, "Hosting provider not verified as green"},
		{scores.Carbon <= 40, "Heavy pages drive a high estimated carbon footprint"},
		{loc.RiskTier == domain.TierHigh, "Headquartered in a high-risk jurisdiction"},
	}
	return take(candidates)
}

// take returns the first three true candidates, never padded.
func take(candidates []candidate) []string {
	out := []string{}
	for _, c := range candidates {
		if !c.when {
			continue
		}
		out = append(out, c.text)
		if len(out) == maxListed {
			break
		}
	}
	return out
}

func countPositive(rep domain.ReputationSignals) int {
	n := 0
	for _, m := range rep.Mentions {
		if m.Sentiment == domain.SentimentPositive {
			n++
		}
	}
	return n
}

// summarize selects a single templated sentence by total banding, citing the
// strongest contributing category.
func summarize(total int, scores domain.CategoryScores) string {
	strongest := strongestCategory(scores)
	switch {
	case total >= 75:
		return fmt.Sprintf("Overall low climate risk (score %d), led by a strong %s signal.", total, strongest)
	case total >= 45:
		return fmt.Sprintf("Overall moderate climate risk (score %d); the strongest signal is %s.", total, strongest)
	default:
		return fmt.Sprintf("Overall high climate risk (score %d); even the strongest signal, %s, is weak.", total, strongest)
	}
}

// strongestCategory breaks ties in a fixed order so the summary is stable.
func strongestCategory(scores domain.CategoryScores) string {
	best, name := scores.Carbon, "carbon"
	if scores.Policy > best {
		best, name = scores.Policy, "policy"
	}
	if scores.Reputation > best {
		best, name = scores.Reputation, "reputation"
	}
	if scores.Location > best {
		name = "location"
	}
	return name
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
