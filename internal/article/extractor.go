package article

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"newssummarizer/internal/domain"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Extractor turns a fetched page into article text.
type Extractor interface {
	Extract(rawHTML string, pageURL *url.URL) domain.Article
}

// ExtractParagraphs concatenates the text of every <p> element in document
// order with no separator. Pages without paragraphs yield "".
func ExtractParagraphs(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	return paragraphs(doc)
}

// ExtractTitle prefers og:title and falls back to <title>.
func ExtractTitle(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	return title(doc)
}

// Truncate keeps at most limit characters of text.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}

	return text
}

type ParagraphExtractor struct{}

func (ParagraphExtractor) Extract(rawHTML string, pageURL *url.URL) domain.Article {
	a := domain.Article{URL: urlString(pageURL)}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return a
	}

	a.Title = title(doc)
	a.Text = paragraphs(doc)

	return a
}

// ReadabilityExtractor keeps only the main content block of the page. It
// falls back to paragraph extraction when readability finds nothing.
type ReadabilityExtractor struct {
	fallback ParagraphExtractor
}

func (e ReadabilityExtractor) Extract(rawHTML string, pageURL *url.URL) domain.Article {
	if pageURL == nil {
		return e.fallback.Extract(rawHTML, pageURL)
	}

	parsed, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return e.fallback.Extract(rawHTML, pageURL)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return e.fallback.Extract(rawHTML, pageURL)
	}

	a := domain.Article{
		URL:   urlString(pageURL),
		Title: strings.TrimSpace(parsed.Title),
		Text:  text,
	}
	if a.Title == "" {
		a.Title = ExtractTitle(rawHTML)
	}

	return a
}

func paragraphs(doc *goquery.Document) string {
	var b strings.Builder

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
	})

	return b.String()
}

func title(doc *goquery.Document) string {
	if content, ok := doc.Find("meta[property='og:title']").Attr("content"); ok {
		if content = strings.TrimSpace(content); content != "" {
			return content
		}
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}

	return u.String()
}
