package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"analyzer/internal/domain"

	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (compatible; TerraTrustAnalyzer/1.0)"

// Cache is an optional short-TTL page snapshot store. A nil Cache disables
// caching entirely; a cache miss or error always falls through to the network.
type Cache interface {
	GetPage(ctx context.Context, url string) (*domain.RawPage, bool)
	PutPage(ctx context.Context, url string, page *domain.RawPage)
}

// Fetcher retrieves raw website content with a bounded timeout, a bounded
// body size, and exactly one retry on transient failures.
type Fetcher struct {
	client  *http.Client
	maxBody int64
	cache   Cache
	logger  *zap.Logger
}

func New(timeout time.Duration, maxBody int64, cache Cache, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBody,
		cache:   cache,
		logger:  logger,
	}
}

// Fetch retrieves targetURL. Transient failures (timeout, 5xx, connection
// reset) are retried once; 4xx, DNS and TLS failures are not.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*domain.RawPage, error) {
	if f.cache != nil {
		if page, ok := f.cache.GetPage(ctx, targetURL); ok {
			f.logger.Debug("serving page from snapshot cache", zap.String("url", targetURL))
			return page, nil
		}
	}

	page, err := f.doFetch(ctx, targetURL)
	if err != nil {
		var fe *domain.FetchError
		if errors.As(err, &fe) && fe.Transient() && ctx.Err() == nil {
			f.logger.Warn("transient fetch failure, retrying once",
				zap.String("url", targetURL), zap.String("kind", string(fe.Kind)))
			page, err = f.doFetch(ctx, targetURL)
		}
	}
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.PutPage(ctx, targetURL, page)
	}
	return page, nil
}

func (f *Fetcher) doFetch(ctx context.Context, targetURL string) (*domain.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &domain.FetchError{Kind: domain.FetchHTTP5xx, URL: targetURL,
			Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}
	if resp.StatusCode >= 400 {
		return nil, &domain.FetchError{Kind: domain.FetchHTTP4xx, URL: targetURL,
			Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	// Read with size limit; truncation is recorded, not silently dropped,
	// so extraction knows the page may be partial.
	limited := io.LimitReader(resp.Body, f.maxBody+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, classify(targetURL, err)
	}
	truncated := int64(len(body)) > f.maxBody
	if truncated {
		body = body[:f.maxBody]
	}

	size := int64(len(body))
	if resp.ContentLength > size {
		// Trust the declared length for page weight when the body was capped.
		size = resp.ContentLength
	}

	return &domain.RawPage{
		HTML:      string(body),
		ByteSize:  size,
		Status:    resp.StatusCode,
		Truncated: truncated,
	}, nil
}

// classify maps a transport error onto the fetch error taxonomy. Unrecognized
// network errors (connection reset and friends) count as TIMEOUT so they get
// the single transient retry.
func classify(targetURL string, err error) *domain.FetchError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &domain.FetchError{Kind: domain.FetchDNS, URL: targetURL, Err: err}
	}

	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &recordErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &hostnameErr) {
		return &domain.FetchError{Kind: domain.FetchTLS, URL: targetURL, Err: err}
	}

	return &domain.FetchError{Kind: domain.FetchTimeout, URL: targetURL, Err: err}
}
