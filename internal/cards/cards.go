// Package cards converts generated text into flashcards and back.
//
// The grammar is one "Definition: Term" pair per line with the first colon as
// the separator. Parsing is tolerant: lines that do not yield a non-empty front
// and back are dropped silently, because partially revealed text routinely ends
// in an incomplete line. A colon inside the definition itself splits the pair in
// the wrong place; the grammar has no escape for it.
package cards

import (
	"strings"

	"github.com/phyraph/gemki/internal/domain"
)

// Separator splits the front of a card from its back.
const Separator = ":"

// Parse splits text into flashcards, one per well-formed line, in line order.
// It never fails and is safe to call on every reveal step.
func Parse(text string) []domain.Flashcard {
	cards := make([]domain.Flashcard, 0)
	if text == "" {
		return cards
	}

	for _, line := range strings.Split(text, "\n") {
		front, back, ok := strings.Cut(line, Separator)
		if !ok {
			continue
		}

		card, err := domain.NewFlashcard(front, back)
		if err != nil {
			continue
		}

		cards = append(cards, card)
	}

	return cards
}

// Render writes cards back into the line grammar Parse reads.
func Render(cards []domain.Flashcard) string {
	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(card.Front)
		b.WriteString(Separator)
		b.WriteByte(' ')
		b.WriteString(card.Back)
	}
	return b.String()
}

// Equal reports whether two card sequences hold the same cards in the same order.
func Equal(a, b []domain.Flashcard) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
