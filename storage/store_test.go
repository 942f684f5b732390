package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*MongoStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// exerciseStore vérifie le contrat commun à toutes les implémentations
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "absent"); err != nil || ok {
		t.Fatalf("Get(absent) = ok=%v err=%v, attendu absent", ok, err)
	}

	if err := s.SetMany(ctx, map[string]string{"token": "T", "user": `{"id":1}`}); err != nil {
		t.Fatalf("SetMany() erreur = %v", err)
	}
	if v, ok, _ := s.Get(ctx, "token"); !ok || v != "T" {
		t.Errorf("Get(token) = %q/%v", v, ok)
	}

	if err := Set(ctx, s, "theme", "dark"); err != nil {
		t.Fatalf("Set() erreur = %v", err)
	}
	if v, _ := GetString(ctx, s, "theme"); v != "dark" {
		t.Errorf("GetString(theme) = %q", v)
	}

	if err := s.Remove(ctx, "token", "user"); err != nil {
		t.Fatalf("Remove() erreur = %v", err)
	}
	for _, k := range []string{"token", "user"} {
		if _, ok, _ := s.Get(ctx, k); ok {
			t.Errorf("%s devrait être supprimé", k)
		}
	}
	if v, _ := GetString(ctx, s, "theme"); v != "dark" {
		t.Error("Remove() ne doit pas toucher les autres clés")
	}

	// Suppression idempotente
	if err := s.Remove(ctx, "token", "user"); err != nil {
		t.Errorf("second Remove() erreur = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() erreur = %v", err)
	}
	exerciseStore(t, s)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("le fichier de session devrait exister: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %v, attendu 0600", info.Mode().Perm())
	}
}

func TestFileStore_persisteEntreInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	first, _ := NewFileStore(path)
	if err := first.SetMany(ctx, map[string]string{"@sahne:auth_token": "abc"}); err != nil {
		t.Fatalf("SetMany() erreur = %v", err)
	}

	second, _ := NewFileStore(path)
	if v, ok, err := second.Get(ctx, "@sahne:auth_token"); err != nil || !ok || v != "abc" {
		t.Errorf("Get() = %q/%v/%v", v, ok, err)
	}
}

func TestFileStore_fichierCorrompu(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{pas du json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(path)
	if _, _, err := s.Get(context.Background(), "x"); err == nil {
		t.Error("Get() devrait échouer sur un fichier corrompu")
	}
}
