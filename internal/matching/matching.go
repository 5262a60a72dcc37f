// Package matching recommends events from free-text user interests.
package matching

import (
	"strings"

	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

// MatchEvents returns the events whose category label shares at least one
// token with the user's interests. Both sides are lower-cased and
// whitespace-tokenized; a match is binary inclusion and the input event order
// is preserved. Events without a category never match.
func MatchEvents(interests string, events []models.Event) []models.Event {
	keywords := tokenize(interests)
	if len(keywords) == 0 {
		return nil
	}

	var matched []models.Event
	for _, event := range events {
		if event.Category == nil {
			continue
		}
		if intersects(keywords, tokenize(event.Category.Name)) {
			matched = append(matched, event)
		}
	}
	return matched
}

func tokenize(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func intersects(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
