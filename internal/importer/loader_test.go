package importer

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createProductFile writes lines to filename in a temp dir, gzipped when the
// name ends in ".gz".
func createProductFile(t *testing.T, filename string, lines []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	content := []byte(strings.Join(lines, "\n") + "\n")
	if strings.HasSuffix(filename, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		_, err = gzipWriter.Write(content)
		require.NoError(t, err)
		require.NoError(t, gzipWriter.Close())
		return filePath
	}

	_, err = file.Write(content)
	require.NoError(t, err)
	return filePath
}

func TestFileLoader_Load(t *testing.T) {
	lines := []string{
		"Egg,3 5 2024",
		"milk, 3 9 2024 ,semi-skimmed",
		"",
		"# pantry shelf",
		"rice,12 1 2025,",
	}

	for _, name := range []string{"products.csv", "products.csv.gz"} {
		t.Run(name, func(t *testing.T) {
			loader := NewFileLoader(zerolog.Nop())
			filePath := createProductFile(t, name, lines)

			rows, err := loader.Load(context.Background(), filePath)

			require.NoError(t, err)
			require.Len(t, rows, 3)

			assert.Equal(t, 1, rows[0].Line)
			assert.Equal(t, "Egg", rows[0].Request.ProdType)
			assert.Equal(t, "3 5 2024", rows[0].Request.ExpDate)
			assert.Nil(t, rows[0].Request.Note)

			assert.Equal(t, "3 9 2024", rows[1].Request.ExpDate)
			require.NotNil(t, rows[1].Request.Note)
			assert.Equal(t, "semi-skimmed", *rows[1].Request.Note)

			assert.Equal(t, 5, rows[2].Line)
			assert.Nil(t, rows[2].Request.Note, "empty note column is omitted")

			for _, row := range rows {
				assert.NoError(t, row.Err)
			}
		})
	}
}

func TestFileLoader_Load_MalformedRows(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createProductFile(t, "products.csv", []string{
		"egg",
		"egg,3 5 2024,note,extra",
		"milk,3 9 2024",
	})

	rows, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.ErrorIs(t, rows[0].Err, ErrMalformedRow)
	assert.ErrorIs(t, rows[1].Err, ErrMalformedRow)
	assert.NoError(t, rows[2].Err)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	rows, err := loader.Load(context.Background(), "/nonexistent/products.csv")

	assert.Error(t, err)
	assert.Nil(t, rows)
	assert.Contains(t, err.Error(), "failed to open product file")
}

func TestFileLoader_Load_NotGzipped(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := filepath.Join(t.TempDir(), "products.csv.gz")
	require.NoError(t, os.WriteFile(filePath, []byte("egg,3 5 2024\n"), 0o600))

	_, err := loader.Load(context.Background(), filePath)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createProductFile(t, "products.csv", []string{"egg,3 5 2024"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
}
