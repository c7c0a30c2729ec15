package website

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"analyzer/internal/domain"
	"analyzer/internal/taxonomy"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// HostingChecker is the optional green-hosting registry collaborator.
type HostingChecker interface {
	IsGreen(ctx context.Context, hostname string) (bool, error)
}

// Extractor parses fetched HTML into structured website signals.
type Extractor struct {
	keywords []keywordMatcher
	hosting  HostingChecker
	logger   *zap.Logger
}

type keywordMatcher struct {
	keyword string
	re      *regexp.Regexp
}

func NewExtractor(tax *taxonomy.Taxonomy, hosting HostingChecker, logger *zap.Logger) *Extractor {
	matchers := make([]keywordMatcher, 0, len(tax.Keywords))
	for _, kw := range tax.Keywords {
		// Word-boundary match so "green" never matches "greenhouse".
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
		matchers = append(matchers, keywordMatcher{keyword: kw, re: re})
	}
	return &Extractor{keywords: matchers, hosting: hosting, logger: logger}
}

// Extract turns a fetched page into WebsiteSignals. It never fails: malformed
// HTML simply yields whatever could be parsed, with absent fields left empty.
func (e *Extractor) Extract(ctx context.Context, pageURL string, page *domain.RawPage) domain.WebsiteSignals {
	signals := domain.WebsiteSignals{
		FoundKeywords:   []string{},
		ReportLinks:     []string{},
		HostingGreen:    domain.HostingUnknown,
		PageWeightBytes: page.ByteSize,
		Truncated:       page.Truncated,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		e.logger.Warn("failed to parse HTML", zap.String("url", pageURL), zap.Error(err))
		signals.Hosting = signals.HostingGreen.String()
		return signals
	}

	signals.Title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("meta").EachWithBreak(func(i int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if strings.EqualFold(name, "description") {
			content, _ := s.Attr("content")
			signals.MetaDescription = strings.TrimSpace(content)
			return false
		}
		return true
	})

	base, baseErr := url.Parse(pageURL)
	if baseErr == nil {
		signals.ReportLinks = extractReportLinks(doc, base)
	}

	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	text := doc.Find("body").Text()
	signals.FoundKeywords = e.matchKeywords(text)

	signals.HostingGreen = e.checkHosting(ctx, base, baseErr)
	signals.Hosting = signals.HostingGreen.String()

	return signals
}

// matchKeywords returns taxonomy keywords found in the visible text,
// deduplicated, ordered by first occurrence in the document.
func (e *Extractor) matchKeywords(text string) []string {
	type hit struct {
		keyword string
		pos     int
	}
	var hits []hit
	for _, m := range e.keywords {
		if loc := m.re.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{keyword: m.keyword, pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	found := make([]string, 0, len(hits))
	for _, h := range hits {
		found = append(found, h.keyword)
	}
	return found
}

// extractReportLinks collects anchors that look like sustainability/ESG
// report documents, resolved to absolute URLs, deduplicated in page order.
func extractReportLinks(doc *goquery.Document, base *url.URL) []string {
	links := []string{}
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		if !looksLikeReport(href, text) {
			return
		}
		rel, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(rel).String()
		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	})

	return links
}

func looksLikeReport(href, linkText string) bool {
	hrefLower := strings.ToLower(href)
	if strings.HasSuffix(hrefLower, ".pdf") || strings.Contains(hrefLower, ".pdf?") {
		return true
	}
	return strings.Contains(linkText, "sustainability report") ||
		strings.Contains(linkText, "esg report")
}

func (e *Extractor) checkHosting(ctx context.Context, base *url.URL, baseErr error) domain.GreenHosting {
	if e.hosting == nil || baseErr != nil || base.Hostname() == "" {
		return domain.HostingUnknown
	}
	green, err := e.hosting.IsGreen(ctx, base.Hostname())
	if err != nil {
		e.logger.Warn("green hosting lookup unavailable",
			zap.String("host", base.Hostname()), zap.Error(err))
		return domain.HostingUnknown
	}
	if green {
		return domain.HostingGreen
	}
	return domain.HostingNotGreen
}
