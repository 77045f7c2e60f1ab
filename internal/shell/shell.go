package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// MaxSize bounds a page shell.
const MaxSize = 2 << 20

var (
	ErrNotHTML  = errors.New("page shell is not an HTML document")
	ErrTooLarge = errors.New("page shell exceeds maximum size")
)

// Options configures remote fetching.
type Options struct {
	Timeout          time.Duration
	RetryMax         int
	RetryWaitMin     time.Duration
	RetryWaitMax     time.Duration
	FailureThreshold int           // consecutive failures before an origin is cut off
	Cooldown         time.Duration // how long an origin stays cut off
}

// DefaultOptions returns the fetch settings used by the server.
func DefaultOptions() Options {
	return Options{
		Timeout:          15 * time.Second,
		RetryMax:         2,
		RetryWaitMin:     250 * time.Millisecond,
		RetryWaitMax:     2 * time.Second,
		FailureThreshold: 3,
		Cooldown:         30 * time.Second,
	}
}

// Loader reads page shells from files or http(s) URLs and returns them as
// UTF-8 HTML.
type Loader struct {
	client *resty.Client
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	breakers map[string]*breaker // by URL host
}

// NewLoader creates a loader. Transient fetch failures are retried by
// go-retryablehttp beneath resty.
func NewLoader(opts Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", "framewidget-shell/1.0").
		SetHeader("Accept", "text/html").
		SetResponseBodyLimit(MaxSize + 1).
		SetTransport(&retryablehttp.RoundTripper{Client: retryClient})

	return &Loader{
		client:   client,
		opts:     opts,
		logger:   logger,
		breakers: make(map[string]*breaker),
	}
}

// Load reads a page shell from source, a file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	if isRemote(source) {
		return l.fetch(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("failed to open page shell: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read page shell: %w", err)
	}
	return Decode(data, "")
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid page shell url: %w", err)
	}
	b := l.breakerFor(u.Host)
	if err := b.allow(); err != nil {
		return "", fmt.Errorf("%w: %s", err, u.Host)
	}

	resp, err := l.client.R().SetContext(ctx).Get(rawURL)
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		b.record(true)
		return "", fmt.Errorf("%w: %s", ErrTooLarge, rawURL)
	}
	if err != nil {
		b.record(false)
		l.logger.Warn("Page shell fetch failed", zap.String("url", rawURL), zap.Error(err))
		return "", fmt.Errorf("failed to fetch page shell: %w", err)
	}
	// Client errors say nothing about the origin's health
	b.record(resp.StatusCode() < 500)
	if resp.IsError() {
		return "", fmt.Errorf("failed to fetch page shell: %s returned %s", rawURL, resp.Status())
	}

	l.logger.Debug("Fetched page shell",
		zap.String("url", rawURL),
		zap.Int("bytes", len(resp.Body())),
	)
	return Decode(resp.Body(), resp.Header().Get("Content-Type"))
}

func (l *Loader) breakerFor(host string) *breaker {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.breakers[host]
	if !ok {
		b = newBreaker(l.opts.FailureThreshold, l.opts.Cooldown)
		l.breakers[host] = b
	}
	return b
}

// Decode checks that data is an HTML document and converts it to UTF-8.
// contentType, when known, may declare the charset.
func Decode(data []byte, contentType string) (string, error) {
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}
	if mt := mimetype.Detect(data); !mt.Is("text/html") {
		return "", fmt.Errorf("%w: detected %s", ErrNotHTML, mt.String())
	}

	name := detectCharset(data, contentType)
	r, err := charset.NewReaderLabel(name, bytes.NewReader(data))
	if err != nil {
		// Unknown label: keep the bytes as they are
		return string(data), nil
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode page shell as %s: %w", name, err)
	}
	return string(out), nil
}

// detectCharset prefers a BOM, a Content-Type parameter or a <meta> charset,
// and falls back to statistical detection only when the bytes carry no
// usable declaration and are not valid UTF-8.
func detectCharset(data []byte, contentType string) string {
	_, name, certain := charset.DetermineEncoding(data, contentType)
	if certain || name != "windows-1252" {
		return name
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return name
	}
	return strings.ToLower(result.Charset)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
