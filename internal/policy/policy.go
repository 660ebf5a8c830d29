// Package policy wires the domain roles onto the generic gate.
// Catalog, gérant accounts and history purge are owner-only; recording and
// reading sales is open to both roles.
package policy

import (
	"context"
	"net/http"

	"github.com/diewo77/game-sales-sheets/auth"
	"github.com/diewo77/game-sales-sheets/gate"
	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/models"
)

// Resource types registered on the gate.
const (
	ResourceGame   = "game"
	ResourceGerant = "gerant"
	ResourceSheet  = "sheet"
)

// New builds the application gate with all policies registered.
func New() *gate.Gate[auth.Identity] {
	g := gate.NewGate[auth.Identity]()
	g.Register(ResourceGame, gate.PolicyFunc[auth.Identity](catalogPolicy))
	g.Register(ResourceGerant, gate.PolicyFunc[auth.Identity](ownerOnly))
	g.Register(ResourceSheet, gate.PolicyFunc[auth.Identity](sheetPolicy))
	return g
}

// catalogPolicy: everyone reads the catalog, only the owner changes it.
func catalogPolicy(_ context.Context, id auth.Identity, action gate.Action) bool {
	switch action {
	case gate.ActionView, gate.ActionList:
		return models.ValidRole(id.Role)
	default:
		return id.Role == models.RoleProprietaire
	}
}

// ownerOnly: gérant account management, every action.
func ownerOnly(_ context.Context, id auth.Identity, _ gate.Action) bool {
	return id.Role == models.RoleProprietaire
}

// sheetPolicy: both roles record and read sales; bulk deletion is owner-only.
func sheetPolicy(_ context.Context, id auth.Identity, action gate.Action) bool {
	if action == gate.ActionDelete {
		return id.Role == models.RoleProprietaire
	}
	return models.ValidRole(id.Role)
}

// Require wraps a handler with an authorization check against the gate.
// Denied requests get a 403 access-denied body, never a redirect.
func Require(g *gate.Gate[auth.Identity], action gate.Action, resource string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if err := g.Authorize(r.Context(), id, action, resource); err != nil {
			httpx.JSONError(w, http.StatusForbidden, "access_denied", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
