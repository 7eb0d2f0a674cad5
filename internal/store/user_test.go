package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const usersFixture = "Code,Name,Email,Password\n" +
	"1,Alice,alice@example.com,secret\n" +
	"2,Bob,bob@example.com,hunter2\n"

func TestFindByEmailAndPassword(t *testing.T) {
	users := NewUserStore(writeFile(t, "users.csv", usersFixture))

	u, err := users.FindByEmailAndPassword("bob@example.com", "hunter2")
	if err != nil {
		t.Fatalf("FindByEmailAndPassword returned error: %v", err)
	}
	if u == nil || u.Code != 2 || u.Name != "Bob" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestFindByEmailAndPasswordIsExact(t *testing.T) {
	users := NewUserStore(writeFile(t, "users.csv", usersFixture))

	cases := []struct{ email, password string }{
		{"bob@example.com", "Hunter2"},
		{"BOB@example.com", "hunter2"},
		{"bob@example.com", ""},
		{"carol@example.com", "secret"},
	}
	for _, c := range cases {
		u, err := users.FindByEmailAndPassword(c.email, c.password)
		if err != nil {
			t.Fatalf("unexpected error for %q/%q: %v", c.email, c.password, err)
		}
		if u != nil {
			t.Fatalf("expected no match for %q/%q, got %+v", c.email, c.password, u)
		}
	}
}

func TestUserFindByCode(t *testing.T) {
	users := NewUserStore(writeFile(t, "users.csv", usersFixture))

	u, err := users.FindByCode(1)
	if err != nil {
		t.Fatalf("FindByCode returned error: %v", err)
	}
	if u == nil || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	missing, err := users.FindByCode(99)
	if err != nil {
		t.Fatalf("FindByCode returned error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent code, got %+v", missing)
	}
}

func TestUserStoreMalformedRecordIsFatal(t *testing.T) {
	users := NewUserStore(writeFile(t, "users.csv",
		"Code,Name,Email,Password\nnot-a-number,Alice,alice@example.com,secret\n"))
	if _, err := users.FindByCode(1); err == nil {
		t.Fatal("expected decode error for non-numeric code")
	}
}

func TestUserStoreMissingFileIsFatal(t *testing.T) {
	users := NewUserStore(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := users.FindByCode(1); err == nil {
		t.Fatal("expected error for missing file")
	}
}
