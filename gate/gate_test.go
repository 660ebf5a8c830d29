package gate

import (
	"context"
	"errors"
	"testing"
)

type subject struct {
	ID   uint
	Role string
}

func TestAuthorizeDeniesZeroSubject(t *testing.T) {
	g := NewGate[subject]()
	g.Register("thing", PolicyFunc[subject](func(context.Context, subject, Action) bool { return true }))

	if err := g.Authorize(context.Background(), subject{}, ActionView, "thing"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("zero subject must be denied, got %v", err)
	}
}

func TestAuthorizeWithoutPolicy(t *testing.T) {
	g := NewGate[subject]()
	err := g.Authorize(context.Background(), subject{ID: 1}, ActionView, "unknown")
	if !errors.Is(err, ErrNoPolicyDefined) {
		t.Fatalf("expected ErrNoPolicyDefined, got %v", err)
	}
}

func TestAuthorizeConsultsPolicy(t *testing.T) {
	g := NewGate[subject]()
	g.Register("thing", PolicyFunc[subject](func(_ context.Context, s subject, a Action) bool {
		return s.Role == "admin" || a == ActionView
	}))

	ctx := context.Background()
	if err := g.Authorize(ctx, subject{ID: 1, Role: "admin"}, ActionDelete, "thing"); err != nil {
		t.Fatalf("admin delete denied: %v", err)
	}
	if err := g.Authorize(ctx, subject{ID: 2, Role: "user"}, ActionView, "thing"); err != nil {
		t.Fatalf("user view denied: %v", err)
	}
	if err := g.Authorize(ctx, subject{ID: 2, Role: "user"}, ActionDelete, "thing"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("user delete must be denied, got %v", err)
	}
}

func TestCan(t *testing.T) {
	g := NewGate[uint]()
	g.Register("thing", PolicyFunc[uint](func(_ context.Context, id uint, _ Action) bool { return id == 7 }))

	if !g.Can(context.Background(), 7, ActionUpdate, "thing") {
		t.Fatal("expected allow")
	}
	if g.Can(context.Background(), 8, ActionUpdate, "thing") {
		t.Fatal("expected deny")
	}
}

func TestRegisterOverwrites(t *testing.T) {
	g := NewGate[uint]()
	g.Register("thing", PolicyFunc[uint](func(context.Context, uint, Action) bool { return false }))
	g.Register("thing", PolicyFunc[uint](func(context.Context, uint, Action) bool { return true }))

	if !g.Can(context.Background(), 1, ActionView, "thing") {
		t.Fatal("second registration did not replace the first")
	}
}
