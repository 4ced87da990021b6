package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for local product files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based product loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "product-loader").Logger(),
	}
}

// Load reads a product file from the local file system.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]Row, error) {
	l.logger.Info().Str("file", filePath).Msg("loading product file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open product file")
		return nil, fmt.Errorf("failed to open product file %s: %w", filePath, err)
	}
	defer file.Close()

	rows, err := readRows(ctx, file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading product file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("rows", len(rows)).
		Msg("product file loaded")

	return rows, nil
}
