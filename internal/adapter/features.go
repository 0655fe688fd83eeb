// Package adapter turns prediction requests into model feature rows and
// delegates the actual prediction to a trained model.
package adapter

import (
	"carprice/internal/models"
	"carprice/pkg/utils"
)

// CarFeatures is a validated prediction request. Every field is optional;
// nil means the caller left it blank.
type CarFeatures struct {
	Brand            *string
	Model            *string
	Year             *int
	Mileage          *float64
	FuelType         *string
	Transmission     *string
	Color            *string
	SeatingCapacity  *int
	SellerType       *string
	Owner            *int
	Drivetrain       *string
	EngineCapacity   *float64
	FuelTankCapacity *float64
	MaxPowerHP       *float64
	MaxPowerRPM      *int
	MaxTorqueNm      *float64
	MaxTorqueRPM     *int
}

// FeatureRow is one model input row keyed by normalized column name.
// Values are string, int, float64 or nil.
type FeatureRow map[string]any

// field binds a request field to its feature column. ref returns a
// **string, **int or **float64 into the given CarFeatures.
type field struct {
	name   string
	column string
	kind   models.Kind
	ref    func(f *CarFeatures) any
}

var fields = []field{
	{"brand", models.ColBrand, models.KindText, func(f *CarFeatures) any { return &f.Brand }},
	{"model", models.ColModel, models.KindText, func(f *CarFeatures) any { return &f.Model }},
	{"year", models.ColYear, models.KindInteger, func(f *CarFeatures) any { return &f.Year }},
	{"mileage", models.ColMileage, models.KindFloat, func(f *CarFeatures) any { return &f.Mileage }},
	{"fuel_type", models.ColFuelType, models.KindText, func(f *CarFeatures) any { return &f.FuelType }},
	{"transmission", models.ColTransmission, models.KindText, func(f *CarFeatures) any { return &f.Transmission }},
	{"color", models.ColColor, models.KindText, func(f *CarFeatures) any { return &f.Color }},
	{"seating_capacity", models.ColSeatingCapacity, models.KindInteger, func(f *CarFeatures) any { return &f.SeatingCapacity }},
	{"seller_type", models.ColSellerType, models.KindText, func(f *CarFeatures) any { return &f.SellerType }},
	{"owner", models.ColOwner, models.KindInteger, func(f *CarFeatures) any { return &f.Owner }},
	{"drivetrain", models.ColDrivetrain, models.KindText, func(f *CarFeatures) any { return &f.Drivetrain }},
	{"engine_capacity", models.ColEngineCapacity, models.KindFloat, func(f *CarFeatures) any { return &f.EngineCapacity }},
	{"fuel_tank_capacity", models.ColFuelTankCapacity, models.KindFloat, func(f *CarFeatures) any { return &f.FuelTankCapacity }},
	{"max_power_hp", models.ColMaxPowerHP, models.KindFloat, func(f *CarFeatures) any { return &f.MaxPowerHP }},
	{"max_power_rpm", models.ColMaxPowerRPM, models.KindInteger, func(f *CarFeatures) any { return &f.MaxPowerRPM }},
	{"max_torque_Nm", models.ColMaxTorqueNm, models.KindFloat, func(f *CarFeatures) any { return &f.MaxTorqueNm }},
	{"max_torque_rpm", models.ColMaxTorqueRPM, models.KindInteger, func(f *CarFeatures) any { return &f.MaxTorqueRPM }},
}

// FieldNames returns the request field names in form order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}

	return names
}

// NormalizeBlank maps empty and whitespace-only input to absent and trims
// everything else.
func NormalizeBlank(value string) (string, bool) {
	return utils.NormalizeBlank(value)
}

// ToFeatureRow maps every request field to its feature column. The result
// always holds exactly one entry per feature column.
func ToFeatureRow(f CarFeatures) FeatureRow {
	row := make(FeatureRow, len(fields))

	for _, fd := range fields {
		row[fd.column] = deref(fd.ref(&f))
	}

	return row
}

func deref(ref any) any {
	switch p := ref.(type) {
	case **string:
		if *p != nil {
			return **p
		}
	case **int:
		if *p != nil {
			return **p
		}
	case **float64:
		if *p != nil {
			return **p
		}
	}

	return nil
}
