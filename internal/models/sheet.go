package models

import "time"

// Sheet: une feuille de ventes par date calendaire (YYYY-MM-DD).
// L'index unique sur Date porte l'invariant "au plus une feuille par jour";
// ce n'est pas une convention cliente.
type Sheet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex" json:"date"`
	Sales     []Sale    `gorm:"foreignKey:SheetID" json:"sales"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sale: immuable une fois créée (aucune opération d'édition ou de suppression
// unitaire). GameName et Price sont des copies figées du jeu au moment de la
// vente; renommer un jeu ne réécrit pas l'historique.
type Sale struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SheetID   uint      `gorm:"not null;index:idx_sheet_position,priority:1" json:"-"`
	Position  int       `gorm:"not null;index:idx_sheet_position,priority:2" json:"-"` // ordre d'insertion, attribué côté serveur
	GameID    uint      `gorm:"not null" json:"gameId"`
	GameName  string    `gorm:"not null" json:"gameName"`
	Price     float64   `gorm:"not null" json:"price"`
	Time      string    `gorm:"size:8;not null" json:"time"` // HH:MM:SS
	CreatedAt time.Time `json:"-"`
}
