package normalizer

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"carprice/internal/models"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor()
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor()

	table := validTable()
	second := slices.Clone(table.Rows[0])
	second[slices.Index(table.Header, models.RawMake)] = "Maruti Suzuki"
	second[slices.Index(table.Header, models.ColOwner)] = "Second"
	table.Rows = append(table.Rows, second)

	result, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("Process returned %d records, want 2", len(result.Records))
	}

	// Row order is preserved
	if *result.Records[0].Brand != "Honda" || *result.Records[1].Brand != "Maruti Suzuki" {
		t.Errorf("Brands = %s, %s; want Honda, Maruti Suzuki", *result.Records[0].Brand, *result.Records[1].Brand)
	}

	if *result.Records[1].Owner != 2 {
		t.Errorf("Owner = %d, want 2", *result.Records[1].Owner)
	}

	if len(result.IgnoredColumns) != 0 {
		t.Errorf("IgnoredColumns = %v, want none", result.IgnoredColumns)
	}
}

func TestProcessor_Process_Empty(t *testing.T) {
	p := NewProcessor()

	result, err := p.Process(&models.RawTable{Header: slices.Clone(models.RawColumns)})
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if len(result.Records) != 0 {
		t.Errorf("Process returned %d records for empty input, want 0", len(result.Records))
	}
}

func TestProcessor_Process_ExtraColumnsAreNotCarried(t *testing.T) {
	p := NewProcessor()

	table := validTable()
	table.Header = append(table.Header, "Listing URL")
	table.Rows[0] = append(table.Rows[0], "http://example.com")

	result, err := p.Process(table)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if !slices.Equal(result.IgnoredColumns, []string{"Listing URL"}) {
		t.Errorf("IgnoredColumns = %v, want [Listing URL]", result.IgnoredColumns)
	}

	if cells := result.Records[0].Cells(); len(cells) != len(models.NormalizedColumns) {
		t.Errorf("record has %d cells, want %d", len(cells), len(models.NormalizedColumns))
	}
}

func TestProcessor_Process_ValidationError(t *testing.T) {
	p := NewProcessor()

	table := validTable()
	idx := slices.Index(table.Header, models.RawPrice)
	table.Header[idx] = "Cost"

	result, err := p.Process(table)
	if err == nil {
		t.Fatal("Process expected error for missing column")
	}

	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Process error = %v, want ErrMissingColumn", err)
	}

	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("Process error = %v, want validation context", err)
	}

	if result != nil {
		t.Error("Process expected nil result for invalid input")
	}
}
