package analysis

import (
	"sort"
	"time"
)

// Sighting é uma linha do join veículos × eventos para os eventos escolhidos.
// GroupRecurrences espera as linhas ordenadas por placa e, dentro da placa,
// por data do evento decrescente — assim o primeiro modelo/cor visto é o da
// participação mais recente.
type Sighting struct {
	Plate     string    `gorm:"column:placa"`
	Model     string    `gorm:"column:modelo"`
	Color     string    `gorm:"column:cor"`
	EventName string    `gorm:"column:nome_evento"`
	EventDate time.Time `gorm:"column:data_evento"`
}

type EventRef struct {
	EventName string    `json:"nome_evento"`
	EventDate time.Time `json:"data_evento"`
}

type PlateRecurrence struct {
	Plate     string     `json:"placa"`
	Model     string     `json:"modelo"`
	Color     string     `json:"cor"`
	Frequency int        `json:"frequencia"`
	Events    []EventRef `json:"eventos_participados"`
}

// GroupRecurrences agrupa por placa, filtra quem apareceu em mais de um dos
// eventos selecionados e ordena por frequência decrescente (placa como
// desempate, para saída estável).
func GroupRecurrences(rows []Sighting) []PlateRecurrence {
	grouped := make(map[string]*PlateRecurrence)
	order := make([]string, 0)

	for _, row := range rows {
		rec, ok := grouped[row.Plate]
		if !ok {
			rec = &PlateRecurrence{
				Plate: row.Plate,
				Model: row.Model,
				Color: row.Color,
			}
			grouped[row.Plate] = rec
			order = append(order, row.Plate)
		}

		rec.Frequency++
		rec.Events = append(rec.Events, EventRef{
			EventName: row.EventName,
			EventDate: row.EventDate,
		})
	}

	out := make([]PlateRecurrence, 0, len(order))
	for _, plate := range order {
		if grouped[plate].Frequency > 1 {
			out = append(out, *grouped[plate])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Plate < out[j].Plate
	})

	return out
}
