package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// FetchErrorKind classifies network-layer failures.
type FetchErrorKind string

const (
	FetchTimeout FetchErrorKind = "TIMEOUT"
	FetchDNS     FetchErrorKind = "DNS"
	FetchHTTP4xx FetchErrorKind = "HTTP_4XX"
	FetchHTTP5xx FetchErrorKind = "HTTP_5XX"
	FetchTLS     FetchErrorKind = "TLS"
)

// FetchError is a classified network failure for one URL.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Transient reports whether the failure is worth one retry.
func (e *FetchError) Transient() bool {
	return e.Kind == FetchTimeout || e.Kind == FetchHTTP5xx
}

// ValidationError marks user-correctable input problems. Surfaced as a hard
// failure, never retried.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

var (
	// ErrCollaboratorUnavailable marks an optional external lookup that did
	// not answer. Always degrades to an unknown signal, never fatal.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrEmptyInput is returned by the report exporter for zero results.
	ErrEmptyInput = errors.New("no results to export")
)

// NewAnalysisRequest validates and normalizes raw input into a request.
// A missing scheme defaults to https; anything unparseable or without a host
// fails fast with a ValidationError before touching the network.
func NewAnalysisRequest(rawURL, companyName, location string) (AnalysisRequest, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return AnalysisRequest{}, &ValidationError{Field: "url", Msg: "must not be empty"}
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return AnalysisRequest{}, &ValidationError{Field: "url", Msg: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return AnalysisRequest{}, &ValidationError{Field: "url", Msg: "scheme must be http or https"}
	}
	if u.Host == "" {
		return AnalysisRequest{}, &ValidationError{Field: "url", Msg: "missing host"}
	}
	return AnalysisRequest{
		URL:         u.String(),
		CompanyName: strings.TrimSpace(companyName),
		Location:    strings.TrimSpace(location),
	}, nil
}
