package importer

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"pantry/internal/model"
	"pantry/internal/validator"

	"github.com/rs/zerolog"
)

// Loader reads product rows from a named source.
type Loader interface {
	// Load reads a product file and returns its rows. Files whose name ends
	// in ".gz" are decompressed.
	Load(ctx context.Context, path string) ([]Row, error)
}

// Adder stores a product. service.ProductService satisfies it.
type Adder interface {
	Add(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
}

// Row is one line of a product file. Err is set when the line is malformed.
type Row struct {
	Line    int
	Request model.ProductRequest
	Err     error
}

// Result summarises an import.
type Result struct {
	Added   int
	Skipped int
}

// ErrMalformedRow is reported for rows without the expected columns.
var ErrMalformedRow = errors.New("expected prodType,expDate[,note]")

// Import loads path and adds every well-formed row. Malformed or invalid rows
// are logged and skipped; a storage failure aborts the import.
func Import(ctx context.Context, loader Loader, adder Adder, path string, logger zerolog.Logger) (Result, error) {
	logger = logger.With().Str("component", "importer").Str("file", path).Logger()

	rows, err := loader.Load(ctx, path)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i := range rows {
		row := &rows[i]
		if row.Err == nil {
			if fields := validator.ValidateStruct(&row.Request); len(fields) > 0 {
				row.Err = fmt.Errorf("invalid %s (%s)", fields[0].Field, fields[0].Tag)
			}
		}
		if row.Err != nil {
			logger.Warn().Int("line", row.Line).Err(row.Err).Msg("skipping row")
			res.Skipped++
			continue
		}

		if _, err := adder.Add(ctx, &row.Request); err != nil {
			return res, fmt.Errorf("failed to add product on line %d: %w", row.Line, err)
		}
		res.Added++
	}

	logger.Info().
		Int("added", res.Added).
		Int("skipped", res.Skipped).
		Msg("product import completed")

	return res, nil
}

// readRows parses product rows from r, decompressing when name ends in ".gz".
func readRows(ctx context.Context, r io.Reader, name string) ([]Row, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rows = append(rows, Row{Line: parseErr.Line, Err: parseErr.Err})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, parseRecord(line, record))
	}

	return rows, nil
}

func parseRecord(line int, record []string) Row {
	if len(record) < 2 || len(record) > 3 {
		return Row{Line: line, Err: ErrMalformedRow}
	}

	req := model.ProductRequest{
		ProdType: strings.TrimSpace(record[0]),
		ExpDate:  strings.TrimSpace(record[1]),
	}
	if len(record) == 3 {
		if note := strings.TrimSpace(record[2]); note != "" {
			req.Note = &note
		}
	}

	return Row{Line: line, Request: req}
}
