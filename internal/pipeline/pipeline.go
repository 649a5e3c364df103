package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"newssummarizer/internal/article"
	"newssummarizer/internal/domain"
	"newssummarizer/internal/summarizer"

	"mvdan.cc/xurls/v2"
)

const (
	PreviewMaxChars = 3000

	blankInputMessage = "Please enter a valid URL."
)

var httpURLRe = mustStrictMatchingScheme(`https?://`)

func mustStrictMatchingScheme(scheme string) *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme(scheme)
	if err != nil {
		panic(fmt.Sprintf("compile url pattern (scheme = %s): %v", scheme, err))
	}

	return re
}

type State string

const (
	StateIdle    State = "idle"
	StateWarning State = "warning"
	StateError   State = "error"
	StateSuccess State = "success"
)

type Failure string

const (
	FailureNone      Failure = ""
	FailureFetch     Failure = "fetch"
	FailureNoContent Failure = "no_content"
	FailureSummarize Failure = "summarize"
)

// Fetcher returns the raw markup behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Result is everything the page needs to render one run.
type Result struct {
	State   State
	Failure Failure
	Message string

	URL     string
	Title   string
	Preview string
	Summary string
}

type Pipeline struct {
	fetcher          Fetcher
	extractor        article.Extractor
	summarizer       summarizer.Summarizer
	summarizeTimeout time.Duration
	log              *slog.Logger
}

func New(
	fetcher Fetcher,
	extractor article.Extractor,
	s summarizer.Summarizer,
	summarizeTimeout time.Duration,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:          fetcher,
		extractor:        extractor,
		summarizer:       s,
		summarizeTimeout: summarizeTimeout,
		log:              log,
	}
}

// Run takes the operator input through fetch, extraction and summarisation.
// Every stage either succeeds or stops the run with a non-success Result.
func (p *Pipeline) Run(ctx context.Context, input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{State: StateWarning, Message: blankInputMessage}
	}

	pageURL := DetectURL(input)
	start := time.Now()

	rawHTML, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.log.WarnContext(ctx, "Failed to fetch article",
			"error", err,
			"url", pageURL)

		return Result{
			State:   StateError,
			Failure: FailureFetch,
			Message: fmt.Sprintf("❌ Failed to fetch news from %s: %s", pageURL, fetchReason(err)),
			URL:     pageURL,
		}
	}

	// A fetched URL always parses; extractors accept nil anyway.
	parsedURL, _ := url.Parse(pageURL)

	a := p.extractor.Extract(rawHTML, parsedURL)
	a.URL = pageURL

	if strings.TrimSpace(a.Text) == "" {
		p.log.WarnContext(ctx, "No article text found",
			"url", pageURL,
			"htmlBytes", len(rawHTML))

		return Result{
			State:   StateError,
			Failure: FailureNoContent,
			Message: fmt.Sprintf("❌ No article text found at %s", pageURL),
			URL:     pageURL,
			Title:   a.Title,
		}
	}

	summary, err := p.summarize(ctx, a)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to summarize article",
			"error", err,
			"url", pageURL,
			"textChars", len([]rune(a.Text)))

		return Result{
			State:   StateError,
			Failure: FailureSummarize,
			Message: fmt.Sprintf("❌ Failed to summarize article from %s: %v", pageURL, err),
			URL:     pageURL,
			Title:   a.Title,
			Preview: article.Truncate(a.Text, PreviewMaxChars),
		}
	}

	p.log.InfoContext(ctx, "Article is summarized",
		"url", pageURL,
		"textChars", len([]rune(a.Text)),
		"summaryChars", len([]rune(summary)),
		"durationMs", time.Since(start).Milliseconds())

	return Result{
		State:   StateSuccess,
		URL:     pageURL,
		Title:   a.Title,
		Preview: article.Truncate(a.Text, PreviewMaxChars),
		Summary: summary,
	}
}

// DetectURL returns the first http(s) URL found in the pasted text, or the
// text itself when there is none.
func DetectURL(input string) string {
	input = strings.TrimSpace(input)

	if found := httpURLRe.FindString(input); found != "" {
		return found
	}

	return input
}

func (p *Pipeline) summarize(ctx context.Context, a domain.Article) (string, error) {
	if p.summarizeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.summarizeTimeout)
		defer cancel()
	}

	summary, err := p.summarizer.Summarize(ctx, summarizer.Input{
		Text:      a.Text,
		SourceURL: a.URL,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	return summary, nil
}

func fetchReason(err error) string {
	var fetchErr *article.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Err != nil {
		return fetchErr.Err.Error()
	}

	return err.Error()
}
