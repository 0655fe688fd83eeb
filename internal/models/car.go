package models

import (
	"strconv"
)

// RawRecord is one row of the unprocessed dataset, keyed by column name.
type RawRecord map[string]string

// RawTable is a parsed raw dataset.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Record returns row i as a RawRecord.
func (t *RawTable) Record(i int) RawRecord {
	row := t.Rows[i]
	rec := make(RawRecord, len(t.Header))

	for j, name := range t.Header {
		if j < len(row) {
			rec[name] = row[j]
		}
	}

	return rec
}

// Len returns the number of data rows.
func (t *RawTable) Len() int {
	return len(t.Rows)
}

// CarRecord is one row of the normalized dataset. A nil field is a missing value.
type CarRecord struct {
	Brand            *string
	Model            *string
	PriceUSD         *float64
	Year             *int
	MileageKm        *float64
	FuelType         *string
	Transmission     *string
	Color            *string
	Owner            *int
	SellerType       *string
	EngineCapacityCC *float64
	Drivetrain       *string
	SeatingCapacity  *int
	FuelTankCapacity *float64
	MaxPowerHP       *float64
	MaxPowerRPM      *int
	MaxTorqueNm      *float64
	MaxTorqueRPM     *int
}

// Value returns the value stored under a normalized column name: a string, int,
// float64, or nil when the value is missing or the column is unknown.
func (r *CarRecord) Value(column string) any {
	switch column {
	case ColBrand:
		return textValue(r.Brand)
	case ColModel:
		return textValue(r.Model)
	case ColPriceUSD:
		return floatValue(r.PriceUSD)
	case ColYear:
		return intValue(r.Year)
	case ColMileage:
		return floatValue(r.MileageKm)
	case ColFuelType:
		return textValue(r.FuelType)
	case ColTransmission:
		return textValue(r.Transmission)
	case ColColor:
		return textValue(r.Color)
	case ColOwner:
		return intValue(r.Owner)
	case ColSellerType:
		return textValue(r.SellerType)
	case ColEngineCapacity:
		return floatValue(r.EngineCapacityCC)
	case ColDrivetrain:
		return textValue(r.Drivetrain)
	case ColSeatingCapacity:
		return intValue(r.SeatingCapacity)
	case ColFuelTankCapacity:
		return floatValue(r.FuelTankCapacity)
	case ColMaxPowerHP:
		return floatValue(r.MaxPowerHP)
	case ColMaxPowerRPM:
		return intValue(r.MaxPowerRPM)
	case ColMaxTorqueNm:
		return floatValue(r.MaxTorqueNm)
	case ColMaxTorqueRPM:
		return intValue(r.MaxTorqueRPM)
	default:
		return nil
	}
}

// Cells renders the record in NormalizedColumns order. Missing values are empty strings.
func (r *CarRecord) Cells() []string {
	cells := make([]string, len(NormalizedColumns))
	for i, col := range NormalizedColumns {
		cells[i] = FormatValue(r.Value(col))
	}

	return cells
}

// FormatValue renders a column value the way it is written to the cleaned dataset.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func textValue(p *string) any {
	if p == nil {
		return nil
	}

	return *p
}

func intValue(p *int) any {
	if p == nil {
		return nil
	}

	return *p
}

func floatValue(p *float64) any {
	if p == nil {
		return nil
	}

	return *p
}
