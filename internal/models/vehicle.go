package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID uint  `gorm:"column:evento_id;not null;uniqueIndex:idx_veiculos_evento_ticket" json:"evento_id"`
	Event   Event `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Ticket   string  `gorm:"column:numero_ticket;size:20;not null;uniqueIndex:idx_veiculos_evento_ticket" json:"numero_ticket"`
	Model    string  `gorm:"column:modelo;size:60;not null" json:"modelo"`
	Color    string  `gorm:"column:cor;size:30;not null" json:"cor"`
	Plate    string  `gorm:"column:placa;size:7;not null" json:"placa"`
	Location string  `gorm:"column:localizacao;size:60;not null" json:"localizacao"`
	Notes    *string `gorm:"column:observacoes;type:text" json:"observacoes"`

	Status string `gorm:"size:15;not null;default:'estacionado'" json:"status"`

	EntryTime   time.Time `gorm:"column:hora_entrada;not null" json:"hora_entrada"`
	EntryUserID uint      `gorm:"column:usuario_entrada_id;not null" json:"usuario_entrada_id"`
	EntryUser   User      `gorm:"foreignKey:EntryUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ExitTime   *time.Time `gorm:"column:hora_saida" json:"hora_saida"`
	ExitUserID *uint      `gorm:"column:usuario_saida_id" json:"usuario_saida_id"`
	ExitUser   *User      `gorm:"foreignKey:ExitUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

func (Vehicle) TableName() string { return "veiculos" }
