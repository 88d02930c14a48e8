package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
	"github.com/dgilberg1988/my-surf-spots/internal/ranking"
)

// renderCards renders the ranked cards top to bottom. The output depends only
// on its arguments.
func renderCards(cards []ranking.Card, selectedPos int, width int) string {
	if len(cards) == 0 {
		return mutedStyle.Render("No surf spots to show")
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, renderCard(card, card.Position == selectedPos, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// renderCard renders a single spot
func renderCard(card ranking.Card, selected bool, width int) string {
	// Border: 2 chars, Padding: 4 chars
	contentWidth := width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var content strings.Builder

	// Header
	content.WriteString(spotNameStyle.Render(card.Spot.Name))
	content.WriteString("\n")
	content.WriteString(mutedStyle.Render(card.Spot.Region))
	content.WriteString("\n\n")

	// Waves
	content.WriteString(labelStyle.Render("Waves: "))
	content.WriteString(waveText(card.Wave))
	content.WriteString(mutedStyle.Render("  (typical " + card.Spot.TypicalSurf + ")"))
	content.WriteString("\n")

	// Distance only when the user's location is known
	if d := card.DistanceText(); d != "" {
		content.WriteString(labelStyle.Render("📍 "))
		content.WriteString(valueStyle.Render(d))
		content.WriteString("\n")
	}

	// Flight
	content.WriteString(labelStyle.Render("Est. Flight: "))
	content.WriteString(valueStyle.Render(card.Spot.FlightCost))
	content.WriteString("  ")
	if selected {
		content.WriteString(activeButtonStyle.Render("Find Flights →"))
	} else {
		content.WriteString(buttonStyle.Render("Find Flights →"))
	}

	style := cardStyle
	if selected {
		style = activeCardStyle
	}

	body := lipgloss.NewStyle().Width(contentWidth).Render(content.String())
	return style.Render(body)
}

// waveText styles a wave height by status
func waveText(w models.WaveHeight) string {
	switch w.Status {
	case models.WavePending:
		return wavePendingStyle.Render(w.String())
	case models.WaveUnavailable:
		return waveUnavailableStyle.Render(w.String())
	default:
		return waveStyle.Render("🌊 " + w.String())
	}
}
