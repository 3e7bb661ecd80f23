package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justadataconstruct/xivquote/internal/logging"
	"github.com/justadataconstruct/xivquote/internal/lore"
)

// FileName is the cache file name inside the application cache directory.
const FileName = "cache.json"

// RefreshToken is the only CLI argument that forces a refresh.
const RefreshToken = "refresh"

// ErrCacheNotFound is returned by Load when the cache file does not exist.
var ErrCacheNotFound = errors.New("cache file not found")

// LocatePath returns the cache file path and creates its directory if needed.
//
// root is the base cache directory; when empty the platform user cache directory
// is used. The file lives in root/<appDir>/cache.json.
func LocatePath(root, appDir string) (string, error) {
	if root == "" {
		var err error
		root, err = os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
		}
	}

	dir := filepath.Join(root, appDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

// NeedsRefresh reports whether the cache at path must be rebuilt: the file is
// missing, or arg is exactly "refresh".
func NeedsRefresh(path, arg string) bool {
	if arg == RefreshToken {
		return true
	}
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}

// Load reads and decodes the cache file at path.
func Load(path string) (CategoryCounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CategoryCounts{}, fmt.Errorf("%w: %s", ErrCacheNotFound, path)
		}
		return CategoryCounts{}, fmt.Errorf("failed to read cache file: %w", err)
	}

	counts, err := Decode(data)
	if err != nil {
		return CategoryCounts{}, fmt.Errorf("%s: %w", path, err)
	}
	return counts, nil
}

// Save overwrites the cache file at path with counts.
func Save(path string, counts CategoryCounts) error {
	data, err := Encode(counts)
	if err != nil {
		return err
	}

	// Write to temporary file first, then rename so readers never see a partial file.
	tempPath := path + ".tmp"
	if writeErr := os.WriteFile(tempPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, path); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}
	return nil
}

// Refresh queries each category without a SourceID, one after another, and
// writes the reported totals to path. The existing file is left untouched if
// any query fails.
func Refresh(ctx context.Context, path string, fetcher lore.Fetcher) (CategoryCounts, error) {
	log := logging.FromContext(ctx)

	var counts CategoryCounts
	for _, category := range lore.Categories() {
		resp, err := fetcher.Fetch(ctx, category, 0)
		if err != nil {
			return CategoryCounts{}, fmt.Errorf("refreshing %s total: %w", category.Key, err)
		}
		if err = counts.set(category, resp.Pagination.ResultsTotal); err != nil {
			return CategoryCounts{}, err
		}
		log.Debug().
			Ctx(ctx).
			Str("component", "cache").
			Str("category", category.Key).
			Uint16("total", resp.Pagination.ResultsTotal).
			Msg("category total fetched")
	}

	if err := Save(path, counts); err != nil {
		return CategoryCounts{}, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "cache").
		Str("path", path).
		Msg("cache refreshed")
	return counts, nil
}
