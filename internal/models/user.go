package models

import "time"

// Rôles du personnel. Le propriétaire gère le catalogue, les comptes gérants
// et la purge de l'historique; le gérant enregistre les ventes du jour.
const (
	RoleGerant       = "gerant"
	RoleProprietaire = "proprietaire"
)

// ValidRole reports whether s is one of the two staff roles.
func ValidRole(s string) bool {
	return s == RoleGerant || s == RoleProprietaire
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null;index" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // hashé (bcrypt), jamais sérialisé
	Role      string    `gorm:"not null;index" json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
