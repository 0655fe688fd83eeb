// Package models defines the car listing records shared by the normalizer and the prediction service.
package models

// Raw dataset columns that are renamed or dropped during normalization.
const (
	RawMake      = "Make"
	RawPrice     = "Price"
	RawKilometer = "Kilometer"
	RawEngine    = "Engine"
	RawMaxPower  = "Max Power"
	RawMaxTorque = "Max Torque"
	RawLocation  = "Location"
	RawLength    = "Length"
	RawWidth     = "Width"
	RawHeight    = "Height"
)

// Normalized dataset columns. These are also the feature names the trained model expects.
const (
	ColBrand            = "Brand"
	ColModel            = "Model"
	ColPriceUSD         = "Price (USD)"
	ColYear             = "Year"
	ColMileage          = "Mileage (km)"
	ColFuelType         = "Fuel Type"
	ColTransmission     = "Transmission"
	ColColor            = "Color"
	ColOwner            = "Owner"
	ColSellerType       = "Seller Type"
	ColEngineCapacity   = "Engine Capacity (cc)"
	ColDrivetrain       = "Drivetrain"
	ColSeatingCapacity  = "Seating Capacity"
	ColFuelTankCapacity = "Fuel Tank Capacity"
	ColMaxPowerHP       = "Max Power (hp)"
	ColMaxPowerRPM      = "Max Power (rpm)"
	ColMaxTorqueNm      = "Max Torque (Nm)"
	ColMaxTorqueRPM     = "Max Torque (rpm)"
)

// Kind is the value type of a normalized column.
type Kind int

// Column kinds.
const (
	KindText Kind = iota
	KindInteger
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// RawColumns lists every column the raw dataset must provide.
var RawColumns = []string{
	RawMake, ColModel, RawPrice, ColYear, RawKilometer, ColFuelType, ColTransmission,
	RawLocation, ColColor, ColOwner, ColSellerType, RawEngine, RawMaxPower, RawMaxTorque,
	ColDrivetrain, RawLength, RawWidth, RawHeight, ColSeatingCapacity, ColFuelTankCapacity,
}

// RenamedColumns maps raw column names to their normalized names.
var RenamedColumns = map[string]string{
	RawMake:      ColBrand,
	RawPrice:     ColPriceUSD,
	RawKilometer: ColMileage,
	RawEngine:    ColEngineCapacity,
}

// DroppedColumns are removed from the output. Max Power and Max Torque are
// decomposed into four derived columns before being dropped.
var DroppedColumns = []string{
	RawLocation, RawLength, RawWidth, RawHeight, RawMaxPower, RawMaxTorque,
}

// NormalizedColumns is the exact, ordered column set of the cleaned dataset.
var NormalizedColumns = []string{
	ColBrand, ColModel, ColPriceUSD, ColYear, ColMileage, ColFuelType, ColTransmission,
	ColColor, ColOwner, ColSellerType, ColEngineCapacity, ColDrivetrain, ColSeatingCapacity,
	ColFuelTankCapacity, ColMaxPowerHP, ColMaxPowerRPM, ColMaxTorqueNm, ColMaxTorqueRPM,
}

// FeatureColumns are the normalized columns handed to the model: everything but the target.
var FeatureColumns = []string{
	ColBrand, ColModel, ColYear, ColMileage, ColFuelType, ColTransmission, ColColor,
	ColSeatingCapacity, ColSellerType, ColOwner, ColDrivetrain, ColEngineCapacity,
	ColFuelTankCapacity, ColMaxPowerHP, ColMaxPowerRPM, ColMaxTorqueNm, ColMaxTorqueRPM,
}

// ColumnKinds gives the value type of every normalized column.
var ColumnKinds = map[string]Kind{
	ColBrand:            KindText,
	ColModel:            KindText,
	ColPriceUSD:         KindFloat,
	ColYear:             KindInteger,
	ColMileage:          KindFloat,
	ColFuelType:         KindText,
	ColTransmission:     KindText,
	ColColor:            KindText,
	ColOwner:            KindInteger,
	ColSellerType:       KindText,
	ColEngineCapacity:   KindFloat,
	ColDrivetrain:       KindText,
	ColSeatingCapacity:  KindInteger,
	ColFuelTankCapacity: KindFloat,
	ColMaxPowerHP:       KindFloat,
	ColMaxPowerRPM:      KindInteger,
	ColMaxTorqueNm:      KindFloat,
	ColMaxTorqueRPM:     KindInteger,
}

// IsFeatureColumn reports whether name is one of the model's input columns.
func IsFeatureColumn(name string) bool {
	for _, c := range FeatureColumns {
		if c == name {
			return true
		}
	}

	return false
}
