package model

import "testing"

func TestHashPassword(t *testing.T) {
	a := &AdminModel{AdminPassword: "plain-pass"}
	if err := a.HashPassword(); err != nil {
		t.Fatal(err)
	}
	if !IsBcryptHash(a.AdminPassword) {
		t.Fatalf("not hashed: %s", a.AdminPassword)
	}
	hashed := a.AdminPassword

	// hash yang sudah ada tidak di-hash ulang
	if err := a.HashPassword(); err != nil || a.AdminPassword != hashed {
		t.Fatal("existing hash must be kept")
	}
	if !a.CheckPassword("plain-pass") || a.CheckPassword("nope") {
		t.Fatal("CheckPassword mismatch")
	}
}
