package main

import (
	"testing"

	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRenderCard(t *testing.T) {
	c := session.Carousel{}.Load([]domain.Flashcard{
		{Front: "Capital of France", Back: "Paris"},
		{Front: "Largest planet", Back: "Jupiter"},
	})

	front := renderCard(c)
	assert.Contains(t, front, "Card 1 of 2")
	assert.Contains(t, front, "Capital of France")
	assert.NotContains(t, front, "Paris")

	back := renderCard(c.Flip())
	assert.Contains(t, back, "Paris")
	assert.Contains(t, back, "back")

	assert.Contains(t, renderCard(session.Carousel{}), "No flashcards")
}

func TestRenderSummary(t *testing.T) {
	assert.Contains(t, renderSummary(nil), "No flashcards")

	out := renderSummary([]domain.Flashcard{{Front: "A", Back: "B"}})
	assert.Contains(t, out, "1 flashcards")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
}
