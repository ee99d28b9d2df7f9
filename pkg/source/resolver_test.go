package source

import (
	"archive/zip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxa.txt")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	paths, err := Resolve([]string{path})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Errorf("Resolve = %v, want [%s]", paths, path)
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve([]string{"/no/such/file.txt"}); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
			t.Fatalf("writing file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := Resolve([]string{dir})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 member files, got %v", paths)
	}
}

func TestResolveZipArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "taxa.zip")

	file, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	writer := zip.NewWriter(file)
	for name, content := range map[string]string{
		"first.txt":  "Quercus robur\thttps://example.org/1\n",
		"second.txt": "Fagus sylvatica\thttps://example.org/2\n",
	} {
		member, err := writer.Create(name)
		if err != nil {
			t.Fatalf("creating member: %v", err)
		}
		if _, err := member.Write([]byte(content)); err != nil {
			t.Fatalf("writing member: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	file.Close()

	paths, err := Resolve([]string{archivePath})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 extracted files, got %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("extracted file %s not readable: %v", p, err)
		}
	}
}

func TestResolveRemoteURL(t *testing.T) {
	content := "Quercus robur\thttps://example.org/1\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer ts.Close()

	paths, err := Resolve([]string{ts.URL + "/remote-taxa.txt"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 downloaded file, got %v", paths)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != content {
		t.Errorf("downloaded content = %q, want %q", data, content)
	}
	os.Remove(paths[0])
}

func TestResolveRemoteErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	if _, err := Resolve([]string{ts.URL + "/missing-remote.txt"}); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestCacheDirWritable(t *testing.T) {
	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("cache dir %s not usable: %v", dir, err)
	}
}
