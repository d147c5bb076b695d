package handler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// descriptionPolicy strips scripts and unsafe attributes from feed HTML
// before it is handed to API clients.
var descriptionPolicy = bluemonday.UGCPolicy()

func sanitizeDescription(description string) string {
	return descriptionPolicy.Sanitize(description)
}

// excerptLength is the number of characters shown on a card.
const excerptLength = 150

// excerpt reduces a feed description to plain text and clips it for display.
// Exports keep the full description.
func excerpt(description string) string {
	text := description
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(description)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return string(runes[:excerptLength]) + "..."
}
