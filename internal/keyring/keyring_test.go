package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	testConnStr := "postgres://frontdesk@localhost:5432/labcita?sslmode=disable"

	// Test Set
	err := SetConnectionString(testConnStr)
	if err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	// Test Get
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

	err := SetConnectionString("")
	if err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteConnectionString()

	_, err := GetConnectionString()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://frontdesk@db.internal:5432/labcita"

	// First, set a connection string
	err := SetConnectionString(testConnStr)
	if err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	// Delete it
	err = DeleteConnectionString()
	if err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}

	// Verify it's gone
	_, err = GetConnectionString()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("After DeleteConnectionString(), GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteConnectionString()

	err := DeleteConnectionString()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	available := IsAvailable()
	// In mock mode, keyring should be available
	if !available {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}

func TestAdminPasswords(t *testing.T) {
	gokeyring.MockInit()
	var store AdminPasswords

	if err := store.Set("Admin@LabCentral.pe", "s3creta"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	// Lookups are case-insensitive on the email
	got, err := store.Get("admin@labcentral.pe ")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != "s3creta" {
		t.Errorf("Get() = %q, want %q", got, "s3creta")
	}

	if err := store.Delete("admin@labcentral.pe"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("admin@labcentral.pe"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestAdminPasswordsRejectEmpty(t *testing.T) {
	gokeyring.MockInit()
	var store AdminPasswords

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: " ", password: "x"},
		{name: "empty password", email: "admin@lab.pe", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set(tt.email, tt.password); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAdminPasswordsIsolatedFromConnectionString(t *testing.T) {
	gokeyring.MockInit()
	var store AdminPasswords

	if err := SetConnectionString("postgres://frontdesk@localhost/labcita"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if _, err := store.Get("database-connection"); !errors.Is(err, ErrNotFound) {
		t.Errorf("admin lookup should not see the connection string, got err %v", err)
	}
}
