package services

import (
	"errors"
	"testing"

	"github.com/diewo77/game-sales-sheets/internal/models"
)

func TestCreateGerantAndAuthenticate(t *testing.T) {
	svc := NewAccountService(testDB(t))

	created, err := svc.CreateGerant("marie", "secret123", "Marie")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != models.RoleGerant {
		t.Fatalf("unexpected role %s", created.Role)
	}
	if created.Password == "secret123" {
		t.Fatal("password stored in clear")
	}

	user, err := svc.Authenticate("marie", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("wrong user: %d vs %d", user.ID, created.ID)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := NewAccountService(testDB(t))
	if _, err := svc.CreateGerant("marie", "secret123", "Marie"); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, unknownErr := svc.Authenticate("nobody", "whatever")
	_, wrongErr := svc.Authenticate("marie", "wrongpass")
	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", unknownErr, wrongErr)
	}
}

func TestCreateGerantUsernameUniqueAcrossRoles(t *testing.T) {
	db := testDB(t)
	svc := NewAccountService(db)

	owner := models.User{Username: "proprietaire", Password: "x", Role: models.RoleProprietaire, Name: "Patron"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if _, err := svc.CreateGerant("proprietaire", "secret123", "Imposteur"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken against owner username, got %v", err)
	}

	if _, err := svc.CreateGerant("marie", "secret123", "Marie"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateGerant("marie", "autre456", "Autre"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestListGerantsExcludesOwner(t *testing.T) {
	db := testDB(t)
	svc := NewAccountService(db)
	if err := db.Create(&models.User{Username: "proprietaire", Password: "x", Role: models.RoleProprietaire, Name: "Patron"}).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if _, err := svc.CreateGerant("marie", "secret123", "Marie"); err != nil {
		t.Fatalf("create: %v", err)
	}

	gerants, err := svc.ListGerants()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(gerants) != 1 || gerants[0].Username != "marie" {
		t.Fatalf("unexpected list: %+v", gerants)
	}
}

func TestDeleteGerantRefusesOwner(t *testing.T) {
	db := testDB(t)
	svc := NewAccountService(db)
	owner := models.User{Username: "proprietaire", Password: "x", Role: models.RoleProprietaire, Name: "Patron"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if err := svc.DeleteGerant(owner.ID); !errors.Is(err, ErrNotGerant) {
		t.Fatalf("expected ErrNotGerant, got %v", err)
	}

	gerant, err := svc.CreateGerant("marie", "secret123", "Marie")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteGerant(gerant.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(gerant.ID); err == nil {
		t.Fatal("gerant still present after delete")
	}
}
