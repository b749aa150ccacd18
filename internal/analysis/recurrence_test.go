package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-manobrista/valet-api/internal/analysis"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupRecurrences(t *testing.T) {
	// Linhas já ordenadas por placa e data do evento decrescente, como a
	// query entrega.
	rows := []analysis.Sighting{
		{Plate: "ABC1234", Model: "Civic", Color: "Preto", EventName: "Jantar de Gala", EventDate: day(20)},
		{Plate: "ABC1234", Model: "Civic", Color: "Prata", EventName: "Casamento Silva", EventDate: day(10)},
		{Plate: "XYZ9876", Model: "Corolla", Color: "Branco", EventName: "Jantar de Gala", EventDate: day(20)},
		{Plate: "ZZZ7777", Model: "Gol", Color: "Vermelho", EventName: "Formatura", EventDate: day(25)},
		{Plate: "ZZZ7777", Model: "Gol", Color: "Vermelho", EventName: "Jantar de Gala", EventDate: day(20)},
		{Plate: "ZZZ7777", Model: "Gol", Color: "Azul", EventName: "Casamento Silva", EventDate: day(10)},
	}

	out := analysis.GroupRecurrences(rows)

	require.Len(t, out, 2, "placa vista em um único evento fica de fora")

	// ZZZ7777 aparece 3 vezes e vem antes de ABC1234 (2 vezes)
	assert.Equal(t, "ZZZ7777", out[0].Plate)
	assert.Equal(t, 3, out[0].Frequency)
	assert.Len(t, out[0].Events, 3)

	assert.Equal(t, "ABC1234", out[1].Plate)
	assert.Equal(t, 2, out[1].Frequency)
	assert.Equal(t, []analysis.EventRef{
		{EventName: "Jantar de Gala", EventDate: day(20)},
		{EventName: "Casamento Silva", EventDate: day(10)},
	}, out[1].Events)
}

func TestGroupRecurrencesKeepsMostRecentModelAndColor(t *testing.T) {
	rows := []analysis.Sighting{
		{Plate: "ABC1234", Model: "Civic 2024", Color: "Preto", EventName: "B", EventDate: day(20)},
		{Plate: "ABC1234", Model: "Civic 2020", Color: "Prata", EventName: "A", EventDate: day(10)},
	}

	out := analysis.GroupRecurrences(rows)

	require.Len(t, out, 1)
	assert.Equal(t, "Civic 2024", out[0].Model)
	assert.Equal(t, "Preto", out[0].Color)
}

func TestGroupRecurrencesTieBreaksByPlate(t *testing.T) {
	rows := []analysis.Sighting{
		{Plate: "BBB2222", EventName: "B", EventDate: day(20)},
		{Plate: "BBB2222", EventName: "A", EventDate: day(10)},
		{Plate: "AAA1111", EventName: "B", EventDate: day(20)},
		{Plate: "AAA1111", EventName: "A", EventDate: day(10)},
	}

	out := analysis.GroupRecurrences(rows)

	require.Len(t, out, 2)
	assert.Equal(t, "AAA1111", out[0].Plate)
	assert.Equal(t, "BBB2222", out[1].Plate)
}

func TestGroupRecurrencesEmpty(t *testing.T) {
	assert.Empty(t, analysis.GroupRecurrences(nil))
}
