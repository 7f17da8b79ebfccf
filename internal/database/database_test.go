package database

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"001_client_storage.sql", 1},
		{"012_more.sql", 12},
		{"README.md", 0},
		{"x.s", 0},
	}
	for _, tc := range tests {
		if got := MigrationVersion(tc.name); got != tc.expected {
			t.Errorf("MigrationVersion(%q): expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}

func TestMigrations_Embedded(t *testing.T) {
	content, err := fs.ReadFile(Migrations(), "001_client_storage.sql")
	if err != nil {
		t.Fatalf("expected embedded migration: %v", err)
	}
	if !strings.Contains(string(content), "client_storage") {
		t.Fatalf("unexpected migration content: %s", content)
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewPostgresPool_InvalidURL(t *testing.T) {
	if _, err := NewPostgresPool(context.Background(), "postgres://%zz"); err == nil {
		t.Fatal("expected parse error")
	}
}
