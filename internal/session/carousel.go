package session

import (
	"slices"

	"github.com/phyraph/gemki/internal/cards"
	"github.com/phyraph/gemki/internal/domain"
)

// Direction is the direction of an in-flight carousel move.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	default:
		return "none"
	}
}

// Carousel shows one card at a time. All methods return a new value.
//
// While Animating, Target holds the index that Land will commit; Index still
// points at the card being moved away from.
type Carousel struct {
	Cards     []domain.Flashcard `json:"cards"`
	Index     int                `json:"index"`
	Flipped   bool               `json:"flipped"`
	Animating bool               `json:"animating"`
	Direction Direction          `json:"direction"`
	Target    int                `json:"-"`
}

// Idle reports whether there is nothing to show.
func (c Carousel) Idle() bool {
	return len(c.Cards) == 0
}

// Current returns the card at Index.
func (c Carousel) Current() (domain.Flashcard, bool) {
	if c.Idle() {
		return domain.Flashcard{}, false
	}
	return c.Cards[c.Index], true
}

// HasNext reports whether Next would move.
func (c Carousel) HasNext() bool {
	return !c.Idle() && !c.Animating && c.Index < len(c.Cards)-1
}

// HasPrev reports whether Prev would move.
func (c Carousel) HasPrev() bool {
	return !c.Idle() && !c.Animating && c.Index > 0
}

// Next starts a move to the following card. No-op at the last card.
func (c Carousel) Next() Carousel {
	if !c.HasNext() {
		return c
	}
	return c.move(DirectionNext, c.Index+1)
}

// Prev starts a move to the preceding card. No-op at the first card.
func (c Carousel) Prev() Carousel {
	if !c.HasPrev() {
		return c
	}
	return c.move(DirectionPrev, c.Index-1)
}

func (c Carousel) move(dir Direction, target int) Carousel {
	c.Flipped = false
	c.Animating = true
	c.Direction = dir
	c.Target = target
	return c
}

// Land commits a pending move.
func (c Carousel) Land() Carousel {
	if !c.Animating {
		return c
	}
	c.Index = c.Target
	c.Animating = false
	c.Direction = DirectionNone
	return c.clamp()
}

// Flip toggles between front and back of the current card.
func (c Carousel) Flip() Carousel {
	if c.Idle() {
		return c
	}
	c.Flipped = !c.Flipped
	return c
}

// Load replaces the card set. A set that differs from the current one resets
// the position to the first card, face up. An identical set keeps the position.
func (c Carousel) Load(next []domain.Flashcard) Carousel {
	if cards.Equal(c.Cards, next) {
		return c.clamp()
	}
	return Carousel{Cards: slices.Clone(next)}
}

func (c Carousel) clamp() Carousel {
	if c.Idle() {
		return Carousel{Cards: c.Cards}
	}
	c.Index = max(0, min(c.Index, len(c.Cards)-1))
	c.Target = max(0, min(c.Target, len(c.Cards)-1))
	return c
}
