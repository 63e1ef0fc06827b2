package discount

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped catalog files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "discount-loader").Logger(),
	}
}

// Load reads a gzipped catalog file and returns a Catalog.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Catalog, error) {
	l.logger.Info().Str("file", filePath).Msg("loading discount file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open discount file")
		return nil, fmt.Errorf("failed to open discount file %s: %w", filePath, err)
	}
	defer file.Close()

	catalog, err := readCatalog(ctx, file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read discount file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("codes_loaded", catalog.Size()).
		Msg("discount file loaded successfully")

	return catalog, nil
}
