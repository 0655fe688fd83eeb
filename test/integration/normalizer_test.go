package integration

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"carprice/internal/dataset"
	"carprice/internal/models"
	"carprice/internal/normalizer"
)

func fixturePath(name string) string {
	return filepath.Join("..", "fixtures", name)
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizer_RawFixture(t *testing.T) {
	table, err := dataset.ReadRawFile(fixturePath("cars_raw.csv"))
	if err != nil {
		t.Fatalf("ReadRawFile failed: %v", err)
	}

	result, err := normalizer.NewProcessor().Process(table)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(result.Records) != 6 {
		t.Fatalf("Expected 6 records, got %d", len(result.Records))
	}

	// Honda Amaze
	first := result.Records[0]
	if *first.Brand != "Honda" {
		t.Errorf("Expected Brand 'Honda', got '%s'", *first.Brand)
	}

	if !nearly(*first.PriceUSD, 505000/81.28) {
		t.Errorf("PriceUSD = %v, want %v", *first.PriceUSD, 505000/81.28)
	}

	if !nearly(*first.MaxPowerHP, 87*1.01387) || *first.MaxPowerRPM != 6000 {
		t.Errorf("Max Power = %v hp @ %d rpm", *first.MaxPowerHP, *first.MaxPowerRPM)
	}

	if *first.MaxTorqueNm != 109 || *first.MaxTorqueRPM != 4500 {
		t.Errorf("Max Torque = %v Nm @ %d rpm", *first.MaxTorqueNm, *first.MaxTorqueRPM)
	}

	// Decimal torque magnitude
	if got := *result.Records[2].MaxTorqueNm; !nearly(got, 112.7619) {
		t.Errorf("Hyundai torque = %v, want 112.7619", got)
	}

	if *result.Records[1].Owner != 2 {
		t.Errorf("Maruti owner = %d, want 2", *result.Records[1].Owner)
	}

	// Sparse Mahindra row: quoted model, unregistered owner, blank technical fields
	last := result.Records[5]
	if *last.Model != "XUV500 W8, 2WD" {
		t.Errorf("Expected quoted model to survive, got '%s'", *last.Model)
	}

	if last.Owner != nil || last.EngineCapacityCC != nil || last.MaxPowerHP != nil || last.MaxTorqueRPM != nil {
		t.Errorf("Expected missing owner and technical fields, got %+v", last)
	}

	if last.SeatingCapacity != nil || last.FuelTankCapacity != nil {
		t.Errorf("Expected missing capacities, got %+v", last)
	}
}

func TestNormalizer_FileRoundTrip(t *testing.T) {
	table, err := dataset.ReadRawFile(fixturePath("cars_raw.csv"))
	if err != nil {
		t.Fatalf("ReadRawFile failed: %v", err)
	}

	result, err := normalizer.NewProcessor().Process(table)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	output := filepath.Join(t.TempDir(), "out", "cleaned.csv")
	if err := dataset.WriteFile(output, result.Records); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	header, _, _ := strings.Cut(string(content), "\n")
	for _, dropped := range models.DroppedColumns {
		if slices.Contains(strings.Split(header, ","), dropped) {
			t.Errorf("Dropped column %q present in output header", dropped)
		}
	}

	if strings.HasPrefix(header, ",") {
		t.Error("Output must not start with an index column")
	}

	back, err := dataset.ReadNormalizedFile(output)
	if err != nil {
		t.Fatalf("ReadNormalizedFile failed: %v", err)
	}

	if len(back) != len(result.Records) {
		t.Fatalf("Round trip returned %d records, want %d", len(back), len(result.Records))
	}

	for i := range back {
		if !slices.Equal(back[i].Cells(), result.Records[i].Cells()) {
			t.Errorf("Row %d differs after round trip:\n got %v\nwant %v", i+1, back[i].Cells(), result.Records[i].Cells())
		}
	}

	summary := normalizer.Summarize(back)
	if summary.Rows != 6 {
		t.Errorf("Summary rows = %d, want 6", summary.Rows)
	}

	// Mahindra row: owner, engine, 2 power, 2 torque, drivetrain, seating, tank
	if summary.Missing() != 9 {
		t.Errorf("Summary missing = %d, want 9", summary.Missing())
	}
}

func TestNormalizer_MissingColumnWritesNothing(t *testing.T) {
	input := "Make,Model,Price\nHonda,Amaze,505000\n"

	table, err := dataset.ReadRaw(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	_, err = normalizer.NewProcessor().Process(table)
	if !errors.Is(err, normalizer.ErrMissingColumn) {
		t.Fatalf("Process error = %v, want ErrMissingColumn", err)
	}
}

func TestNormalizer_HeaderOnly(t *testing.T) {
	input := strings.Join(models.RawColumns, ",") + "\n"

	table, err := dataset.ReadRaw(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	result, err := normalizer.NewProcessor().Process(table)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(result.Records) != 0 {
		t.Errorf("Expected no records, got %d", len(result.Records))
	}
}
