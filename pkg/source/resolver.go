/*
Package source resolves gazetteer source locations into local file paths.

A location may be a plain file, a directory (every member becomes a
source), a .zip archive (every contained file becomes a source), or an
http(s) URL which is fetched into a writable cache directory first. The
cache lives under ~/.cache/gazetteer, falling back to the system temp
directory; no writable candidate is a fatal error.
*/
package source

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lexigraph/gazetteer/internal/utils"
)

// CacheDir returns a readable and writable directory for downloads and
// archive extraction, creating it if needed.
func CacheDir() (string, error) {
	var candidates []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".cache", "gazetteer"))
	}
	candidates = append(candidates, filepath.Join(os.TempDir(), "gazetteer"))

	for _, dir := range candidates {
		if result := utils.CheckDirStatus(dir); result.Writable {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no writable cache directory among %v; download the source files yourself and pass a readable path", candidates)
}

// Resolve expands every location into local file paths, in order.
func Resolve(locations []string) ([]string, error) {
	var paths []string
	for _, location := range locations {
		resolved, err := resolveOne(location)
		if err != nil {
			return nil, err
		}
		paths = append(paths, resolved...)
	}
	return paths, nil
}

func resolveOne(location string) ([]string, error) {
	if isRemote(location) {
		local, err := download(location)
		if err != nil {
			return nil, err
		}
		location = local
	}

	if strings.HasSuffix(location, ".zip") {
		return extractZip(location)
	}

	if utils.IsDir(location) {
		members, err := os.ReadDir(location)
		if err != nil {
			return nil, fmt.Errorf("reading source directory %s: %w", location, err)
		}
		var paths []string
		for _, member := range members {
			if member.IsDir() {
				continue
			}
			paths = append(paths, filepath.Join(location, member.Name()))
		}
		return paths, nil
	}

	if !utils.FileExists(location) {
		return nil, fmt.Errorf("source location %s does not exist", location)
	}
	return []string{location}, nil
}

// isRemote reports whether location is an http(s) URL.
func isRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// download fetches rawURL into the cache directory, skipping the fetch when
// a previous run already cached the file.
func download(rawURL string) (string, error) {
	cacheDir, err := CacheDir()
	if err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid source URL %s: %w", rawURL, err)
	}
	name := filepath.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = "source"
	}
	destination := filepath.Join(cacheDir, name)
	if utils.FileExists(destination) {
		log.Debugf("File '%s' exists, skipping download.", destination)
		return destination, nil
	}

	log.Infof("Downloading '%s'..", rawURL)
	resp, err := http.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	file, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", destination, err)
	}
	defer file.Close()
	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("writing %s: %w", destination, err)
	}
	log.Infof("Finished download of '%s'.", destination)
	return destination, nil
}

// extractZip unpacks every file in the archive into the cache directory and
// returns the extracted paths. Members already present on disk are reused.
func extractZip(path string) ([]string, error) {
	cacheDir, err := CacheDir()
	if err != nil {
		return nil, err
	}

	log.Infof("Extracting source files from '%s'..", path)
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer archive.Close()

	var extracted []string
	for _, member := range archive.File {
		if member.FileInfo().IsDir() {
			continue
		}
		destination := filepath.Join(cacheDir, filepath.Base(member.Name))
		extracted = append(extracted, destination)
		if utils.FileExists(destination) {
			log.Debugf("File '%s' exists, skipping extraction.", destination)
			continue
		}
		if err := extractMember(member, destination); err != nil {
			return nil, err
		}
	}
	log.Infof("Extracted %d source files from '%s'.", len(extracted), path)
	return extracted, nil
}

func extractMember(member *zip.File, destination string) error {
	in, err := member.Open()
	if err != nil {
		return fmt.Errorf("opening archive member %s: %w", member.Name, err)
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destination, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("extracting %s: %w", member.Name, err)
	}
	return nil
}
