package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestDeriveUsername(t *testing.T) {
	cases := []struct {
		email  string
		suffix int
		want   string
	}{
		{"john.smith@example.com", 0, "john.smith"},
		{"John.Smith@example.com", 0, "john.smith"},
		{"john.smith@example.com", 2, "john.smith2"},
		{"noat", 0, "noat"},
		{"@example.com", 0, "@example.com"},
	}

	for _, c := range cases {
		got := deriveUsername(c.email, c.suffix)
		if got != c.want {
			t.Errorf("deriveUsername(%q, %d) = %q, want %q", c.email, c.suffix, got, c.want)
		}
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("s3cret")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("hash does not match original password: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")); err == nil {
		t.Error("hash matches a wrong password")
	}
}
