package models

import "time"

const (
	UserStatusActive   = "ativo"
	UserStatusInactive = "inativo"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"column:nome_usuario;size:30;uniqueIndex;not null" json:"nome_usuario"`
	PasswordHash string `gorm:"column:senha;size:255;not null" json:"-"`
	Role         string `gorm:"column:cargo;size:20;not null" json:"cargo"`
	Status       string `gorm:"size:10;not null;default:'ativo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "usuarios" }
