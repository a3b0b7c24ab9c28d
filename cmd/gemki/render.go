package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phyraph/gemki/internal/domain"
	"github.com/phyraph/gemki/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 4).
			Width(60).
			Align(lipgloss.Center)

	flippedCardStyle = cardStyle.BorderForeground(lipgloss.Color("212"))
)

// renderSummary lists cards, or says there are none.
func renderSummary(cards []domain.Flashcard) string {
	if len(cards) == 0 {
		return mutedStyle.Render("No flashcards found in the reply.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d flashcards", len(cards))))
	b.WriteString("\n")
	for i, c := range cards {
		fmt.Fprintf(&b, "%3d. %s %s %s\n", i+1, c.Front, mutedStyle.Render("→"), c.Back)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCard draws the current carousel card. The front is shown until the
// card is flipped.
func renderCard(c session.Carousel) string {
	card, ok := c.Current()
	if !ok {
		return mutedStyle.Render("No flashcards.")
	}

	face, style, label := card.Front, cardStyle, "front"
	if c.Flipped {
		face, style, label = card.Back, flippedCardStyle, "back"
	}

	header := mutedStyle.Render(fmt.Sprintf("Card %d of %d · %s", c.Index+1, len(c.Cards), label))
	return lipgloss.JoinVertical(lipgloss.Center, header, style.Render(face))
}
