package models

import "time"

type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string    `gorm:"column:nome_evento;size:100;not null;uniqueIndex:idx_eventos_nome_data" json:"nome_evento"`
	StartDate time.Time `gorm:"column:data_evento;type:date;not null;uniqueIndex:idx_eventos_nome_data" json:"data_evento"`
	EndDate   time.Time `gorm:"column:data_fim;type:date;not null" json:"data_fim"`

	// Horários guardados como "HH:MM", como digitados no cadastro.
	StartTime string `gorm:"column:hora_inicio;size:5;not null" json:"hora_inicio"`
	EndTime   string `gorm:"column:hora_fim;size:5;not null" json:"hora_fim"`

	Location    string  `gorm:"column:local_evento;size:150;not null" json:"local_evento"`
	Description *string `gorm:"column:descricao;type:text" json:"descricao"`

	// No máximo um evento ativo em toda a tabela; a troca é transacional.
	IsActive bool `gorm:"column:is_active;not null;default:false" json:"is_active"`

	CreatedAt time.Time `gorm:"column:criado_em" json:"criado_em"`
}

func (Event) TableName() string { return "eventos" }
