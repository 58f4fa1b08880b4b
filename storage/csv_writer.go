package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"realestate-agent/models"
)

// CSVWriter exports normalized property records to a CSV file for offline
// inspection. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"building_name", "property_type", "address", "price", "square_feet",
		"bedrooms", "bathrooms", "lot_size", "year_built", "hoa_fees",
		"property_taxes", "mls_number",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the given records to the CSV file.
func (c *CSVWriter) Write(records []models.PropertyRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			r.BuildingName,
			r.PropertyType,
			r.Address,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.FormatFloat(r.SquareFeet, 'f', 0, 64),
			strconv.Itoa(r.Bedrooms),
			strconv.FormatFloat(r.Bathrooms, 'f', 1, 64),
			r.LotSize,
			strconv.Itoa(r.YearBuilt),
			r.HOAFees,
			r.PropertyTaxes,
			r.MLSNumber,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
