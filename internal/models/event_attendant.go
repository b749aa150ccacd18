package models

import "time"

// EventAttendant vincula um manobrista a um evento (par único), base do
// ranking de produtividade.
type EventAttendant struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EventID uint  `gorm:"column:evento_id;not null;uniqueIndex:idx_evento_manobrista" json:"evento_id"`
	Event   Event `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID uint `gorm:"column:usuario_id;not null;uniqueIndex:idx_evento_manobrista" json:"usuario_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (EventAttendant) TableName() string { return "evento_manobristas" }
