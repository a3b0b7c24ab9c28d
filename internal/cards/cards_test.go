package cards_test

import (
	"strings"
	"testing"

	"github.com/phyraph/gemki/internal/cards"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Flashcard
	}{
		{
			name: "empty text",
			text: "",
			want: []domain.Flashcard{},
		},
		{
			name: "capitals example",
			text: "The capital of France: Paris\nThe capital of Japan: Tokyo",
			want: []domain.Flashcard{
				{Front: "The capital of France", Back: "Paris"},
				{Front: "The capital of Japan", Back: "Tokyo"},
			},
		},
		{
			name: "malformed line is dropped",
			text: "The capital of France: Paris\nnot a flashcard line\nThe capital of Japan: Tokyo",
			want: []domain.Flashcard{
				{Front: "The capital of France", Back: "Paris"},
				{Front: "The capital of Japan", Back: "Tokyo"},
			},
		},
		{
			name: "blank sides are dropped",
			text: ": Paris\nThe capital of Japan:   \n   :   \n\n",
			want: []domain.Flashcard{},
		},
		{
			name: "splits at the first colon only",
			text: "Ratio of 1:2 written as: one to two",
			want: []domain.Flashcard{
				{Front: "Ratio of 1", Back: "2 written as: one to two"},
			},
		},
		{
			name: "windows line endings are trimmed",
			text: "Front one: Back one\r\nFront two: Back two\r\n",
			want: []domain.Flashcard{
				{Front: "Front one", Back: "Back one"},
				{Front: "Front two", Back: "Back two"},
			},
		},
		{
			name: "duplicates are kept",
			text: "A: B\nA: B",
			want: []domain.Flashcard{
				{Front: "A", Back: "B"},
				{Front: "A", Back: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cards.Parse(tt.text))
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	t.Parallel()

	text := "The process by which green plants use sunlight to synthesize foods: Photosynthesis\n" +
		"The chemical element with the symbol O and atomic number 8: Oxygen\n" +
		"junk\n"

	first := cards.Parse(text)
	second := cards.Parse(text)

	assert.Equal(t, first, second)
	assert.True(t, cards.Equal(first, second))
}

func TestParseRecoversRenderedCards(t *testing.T) {
	t.Parallel()

	want := []domain.Flashcard{
		{Front: "The capital of France", Back: "Paris"},
		{Front: "The capital of Japan", Back: "Tokyo"},
		{Front: "The largest planet", Back: "Jupiter"},
	}

	assert.Equal(t, want, cards.Parse(cards.Render(want)))
}

func TestParsePrefixConsistency(t *testing.T) {
	t.Parallel()

	text := "The capital of France: Paris\nThe capital of Japan: Tokyo\nThe capital of Italy: Rome"
	full := cards.Parse(text)

	// Every prefix yields a prefix of the full result, except that the last
	// card may still be truncated.
	for i := 0; i <= len(text); i++ {
		partial := cards.Parse(text[:i])
		if !assert.LessOrEqual(t, len(partial), len(full), "prefix %d", i) {
			continue
		}
		for j, card := range partial {
			if j < len(partial)-1 {
				assert.Equal(t, full[j], card, "prefix %d card %d", i, j)
				continue
			}
			assert.Equal(t, full[j].Front, card.Front, "prefix %d card %d", i, j)
			assert.True(t, strings.HasPrefix(full[j].Back, card.Back), "prefix %d card %d", i, j)
		}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := []domain.Flashcard{{Front: "A", Back: "B"}}
	assert.True(t, cards.Equal(a, []domain.Flashcard{{Front: "A", Back: "B"}}))
	assert.False(t, cards.Equal(a, []domain.Flashcard{{Front: "A", Back: "C"}}))
	assert.False(t, cards.Equal(a, nil))
	assert.True(t, cards.Equal(nil, []domain.Flashcard{}))
}
