// Package news defines the news-search collaborator interface consumed by
// the reputation extractor.
package news

import "context"

// Searcher is a news/web search service keyed by a free-text query.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request is a generic search request.
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
}

// Response is a generic search response.
type Response struct {
	Results []Result
}

// Result is a single search hit.
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}
