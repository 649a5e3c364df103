package article

import (
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractParagraphsConcatenatesWithoutSeparator(t *testing.T) {
	got := ExtractParagraphs("<p>Hello</p><p>World</p>")
	if got != "HelloWorld" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractParagraphsKeepsDocumentOrder(t *testing.T) {
	html := `<html><body>
<div><p>first</p></div>
<section><p>second <b>bold</b></p><article><p>third</p></article></section>
<p>fourth</p>
</body></html>`

	got := ExtractParagraphs(html)
	want := "firstsecond boldthirdfourth"
	if got != want {
		t.Fatalf("unexpected text: got %q want %q", got, want)
	}
}

func TestExtractParagraphsWithoutParagraphs(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"<html><body><div>no paragraphs</div><span>here</span></body></html>",
	}

	for _, in := range inputs {
		if got := ExtractParagraphs(in); got != "" {
			t.Fatalf("expected empty text for %q, got %q", in, got)
		}
		if got := ExtractParagraphs(in); got != "" {
			t.Fatalf("expected repeated extraction to stay empty for %q, got %q", in, got)
		}
	}
}

func TestExtractParagraphsToleratesMalformedMarkup(t *testing.T) {
	got := ExtractParagraphs("<div><p>unclosed<p>next</div></span>")
	if got != "unclosednext" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTitlePrefersOpenGraph(t *testing.T) {
	html := `<html><head><title>Page title</title>
<meta property="og:title" content=" OG title "></head><body></body></html>`

	if got := ExtractTitle(html); got != "OG title" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestExtractTitleFallsBackToTitleTag(t *testing.T) {
	html := `<html><head><title> Page title </title></head><body></body></html>`

	if got := ExtractTitle(html); got != "Page title" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestParagraphExtractorFillsArticle(t *testing.T) {
	u, err := url.Parse("https://example.com/news/1")
	if err != nil {
		t.Fatalf("parse URL: %v", err)
	}

	a := ParagraphExtractor{}.Extract("<title>T</title><p>Hello</p><p>World</p>", u)

	if a.URL != "https://example.com/news/1" {
		t.Fatalf("unexpected URL: %q", a.URL)
	}
	if a.Title != "T" {
		t.Fatalf("unexpected title: %q", a.Title)
	}
	if a.Text != "HelloWorld" {
		t.Fatalf("unexpected text: %q", a.Text)
	}
}

func TestReadabilityExtractorFallsBackWithoutURL(t *testing.T) {
	a := ReadabilityExtractor{}.Extract("<p>Hello</p><p>World</p>", nil)

	if a.Text != "HelloWorld" {
		t.Fatalf("expected paragraph fallback, got %q", a.Text)
	}
}

func TestReadabilityExtractorReturnsMainContent(t *testing.T) {
	u, err := url.Parse("https://example.com/news/2")
	if err != nil {
		t.Fatalf("parse URL: %v", err)
	}

	body := strings.Repeat("The council approved the new budget after a long debate. ", 20)
	html := `<html><head><title>Budget approved</title></head><body>
<nav><a href="/">Home</a></nav>
<article><h1>Budget approved</h1><p>` + body + `</p><p>` + body + `</p></article>
</body></html>`

	a := ReadabilityExtractor{}.Extract(html, u)

	if !strings.Contains(a.Text, "The council approved the new budget") {
		t.Fatalf("expected article body in text, got %q", a.Text)
	}
	if a.Title == "" {
		t.Fatalf("expected title to be set")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "short", text: "abc", limit: 5, want: "abc"},
		{name: "exact", text: "abcde", limit: 5, want: "abcde"},
		{name: "long", text: "abcdef", limit: 5, want: "abcde"},
		{name: "multibyte", text: "привет мир", limit: 6, want: "привет"},
		{name: "zero", text: "abc", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.limit); got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateNeverExceedsLimit(t *testing.T) {
	for _, n := range []int{0, 1, 2999, 3000, 3001, 10000} {
		text := strings.Repeat("é", n)
		got := Truncate(text, 3000)

		if c := utf8.RuneCountInString(got); c > 3000 {
			t.Fatalf("truncated text has %d characters for input of %d", c, n)
		}
		if n <= 3000 && got != text {
			t.Fatalf("expected short text to be kept for input of %d", n)
		}
	}
}
