package models

import (
	"time"

	"gorm.io/gorm"
)

// Game: entrée du catalogue avec un prix de vente par défaut.
// Soft delete: une vente passée référence le jeu par copie (GameName/Price),
// supprimer un jeu ne touche donc jamais l'historique.
type Game struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;index" json:"name"`
	DefaultPrice float64        `gorm:"not null" json:"defaultPrice"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
