// Package nav computes the sidebar sections visible to a user.
package nav

import "github.com/diewo77/game-sales-sheets/internal/models"

// Section is one sidebar entry of the dashboard frontend.
type Section struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	AllowedRoles []string `json:"-"`
}

var allSections = []Section{
	{ID: "dashboard", Label: "Dashboard", AllowedRoles: []string{models.RoleGerant, models.RoleProprietaire}},
	{ID: "sales", Label: "Ventes du jour", AllowedRoles: []string{models.RoleGerant, models.RoleProprietaire}},
	{ID: "history", Label: "Historique", AllowedRoles: []string{models.RoleGerant, models.RoleProprietaire}},
	{ID: "settings", Label: "Paramètres", AllowedRoles: []string{models.RoleProprietaire}},
}

// Visible returns the sections a user with the given role may navigate to.
// An empty role (no user yet) returns the full set; protected routes still
// bounce unauthenticated visitors to the login entry point.
func Visible(role string) []Section {
	out := make([]Section, 0, len(allSections))
	for _, s := range allSections {
		if role == "" || contains(s.AllowedRoles, role) {
			out = append(out, s)
		}
	}
	return out
}

func contains(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
