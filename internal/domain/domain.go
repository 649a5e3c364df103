package domain

// Article is the plain text pulled out of one fetched page.
type Article struct {
	URL   string
	Title string
	Text  string
}
