package domain

import (
	"fmt"
	"strings"
)

// Flashcard is one term/definition study unit. Front holds the definition and
// Back holds the term, matching the "Definition: Term" output grammar.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// NewFlashcard trims both sides and validates that neither is empty.
func NewFlashcard(front, back string) (Flashcard, error) {
	card := Flashcard{
		Front: strings.TrimSpace(front),
		Back:  strings.TrimSpace(back),
	}

	if err := card.Validate(); err != nil {
		return Flashcard{}, err
	}

	return card, nil
}

// Validate checks the flashcard invariant: both sides are non-empty and trimmed.
func (c Flashcard) Validate() error {
	if c.Front == "" || c.Back == "" {
		return ErrEmptyCardSide
	}

	if c.Front != strings.TrimSpace(c.Front) || c.Back != strings.TrimSpace(c.Back) {
		return fmt.Errorf("%w: sides must be trimmed", ErrEmptyCardSide)
	}

	return nil
}

// String renders the card in its source line form.
func (c Flashcard) String() string {
	return c.Front + ": " + c.Back
}
