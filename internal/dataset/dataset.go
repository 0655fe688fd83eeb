// Package dataset reads and writes the car listings CSV files.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"carprice/internal/models"
)

// Dataset errors.
var (
	ErrEmptyFile     = errors.New("dataset has no header row")
	ErrMalformedCSV  = errors.New("malformed CSV")
	ErrUnknownColumn = errors.New("unknown column in normalized dataset")
	ErrInvalidValue  = errors.New("invalid value in normalized dataset")
)

// utf8BOM is stripped from the start of the stream; spreadsheet exports often carry it.
var utf8BOM = []byte("\uFEFF")

// ReadRawFile reads a raw dataset from disk.
func ReadRawFile(path string) (*models.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ReadRaw(f)
}

// ReadRaw parses a delimited table with a header row. Rows with a different
// number of fields than the header are rejected.
func ReadRaw(r io.Reader) (*models.RawTable, error) {
	reader := csv.NewReader(skipBOM(r))

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &models.RawTable{Header: header}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// skipBOM drops a leading UTF-8 byte order mark so a quoted first header cell
// still parses.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	return br
}

// WriteFile writes normalized records to path, creating parent directories and
// replacing any existing file.
func WriteFile(path string, records []models.CarRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}

// Write serializes records as CSV: a header row in models.NormalizedColumns
// order, then one line per record. Missing values are empty cells.
func Write(w io.Writer, records []models.CarRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(models.NormalizedColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		if err := writer.Write(records[i].Cells()); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// ReadNormalizedFile reads a cleaned dataset from disk.
func ReadNormalizedFile(path string) ([]models.CarRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ReadNormalized(f)
}

// ReadNormalized parses a cleaned dataset produced by Write. Columns may come in
// any order but must all belong to the normalized schema.
func ReadNormalized(r io.Reader) ([]models.CarRecord, error) {
	table, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}

	for _, name := range table.Header {
		if _, ok := models.ColumnKinds[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}

	records := make([]models.CarRecord, 0, table.Len())

	for i, row := range table.Rows {
		var rec models.CarRecord

		for j, name := range table.Header {
			if err := setCell(&rec, name, row[j]); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

func setCell(rec *models.CarRecord, column, cell string) error {
	if cell == "" {
		return nil
	}

	switch models.ColumnKinds[column] {
	case models.KindText:
		*textField(rec, column) = &cell
	case models.KindInteger:
		v, err := strconv.Atoi(cell)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, column, cell)
		}

		*intField(rec, column) = &v
	case models.KindFloat:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, column, cell)
		}

		*floatField(rec, column) = &v
	}

	return nil
}

func textField(rec *models.CarRecord, column string) **string {
	switch column {
	case models.ColBrand:
		return &rec.Brand
	case models.ColModel:
		return &rec.Model
	case models.ColFuelType:
		return &rec.FuelType
	case models.ColTransmission:
		return &rec.Transmission
	case models.ColColor:
		return &rec.Color
	case models.ColSellerType:
		return &rec.SellerType
	default:
		return &rec.Drivetrain
	}
}

func intField(rec *models.CarRecord, column string) **int {
	switch column {
	case models.ColYear:
		return &rec.Year
	case models.ColOwner:
		return &rec.Owner
	case models.ColSeatingCapacity:
		return &rec.SeatingCapacity
	case models.ColMaxPowerRPM:
		return &rec.MaxPowerRPM
	default:
		return &rec.MaxTorqueRPM
	}
}

func floatField(rec *models.CarRecord, column string) **float64 {
	switch column {
	case models.ColPriceUSD:
		return &rec.PriceUSD
	case models.ColMileage:
		return &rec.MileageKm
	case models.ColEngineCapacity:
		return &rec.EngineCapacityCC
	case models.ColFuelTankCapacity:
		return &rec.FuelTankCapacity
	case models.ColMaxPowerHP:
		return &rec.MaxPowerHP
	default:
		return &rec.MaxTorqueNm
	}
}
