package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ratedzzz/small-steps/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"
	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("   "); err == nil {
		t.Error("SetConnectionString with blank input should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://testuser@localhost:5432/testdb"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	t.Setenv(constants.EnvDBConnection, "")
	if _, _, err := ResolveConnectionString(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with no sources, got %v", err)
	}

	if err := SetConnectionString("postgres://keyring@localhost/db"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, source, err := ResolveConnectionString("")
	if err != nil || source != "keyring" || got != "postgres://keyring@localhost/db" {
		t.Errorf("keyring resolve = (%q, %q, %v)", got, source, err)
	}

	t.Setenv(constants.EnvDBConnection, "postgres://env@localhost/db")
	got, source, _ = ResolveConnectionString("")
	if source != "env" || got != "postgres://env@localhost/db" {
		t.Errorf("env resolve = (%q, %q)", got, source)
	}

	got, source, _ = ResolveConnectionString(" postgres://flag@localhost/db ")
	if source != "flag" || got != "postgres://flag@localhost/db" {
		t.Errorf("flag resolve = (%q, %q)", got, source)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should report available")
	}
}
