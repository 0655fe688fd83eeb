package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"carprice/internal/models"
)

// Fixed conversion factors applied to the raw dataset.
const (
	// INRPerUSD converts listing prices from Indian rupees to US dollars.
	INRPerUSD = 81.28
	// HPPerBHP converts brake horsepower to horsepower.
	HPPerBHP = 1.01387
)

// UnregisteredOwner marks a car with no registered owner history.
const UnregisteredOwner = "UnRegistered Car"

var ownerCodes = map[string]int{
	"First":     1,
	"Second":    2,
	"Third":     3,
	"Fourth":    4,
	"4 or More": 5,
}

// Transformer converts raw records into normalized records.
type Transformer struct {
	integerPattern *regexp.Regexp
	decimalPattern *regexp.Regexp
	rpmPattern     *regexp.Regexp
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		integerPattern: regexp.MustCompile(`(\d+)`),
		decimalPattern: regexp.MustCompile(`(\d+\.?\d*)`),
		rpmPattern:     regexp.MustCompile(`@\s*(\d+)`),
	}
}

// Transform maps one raw record onto the normalized schema.
// Values that cannot be parsed or extracted become missing.
func (t *Transformer) Transform(rec models.RawRecord) models.CarRecord {
	out := models.CarRecord{
		Brand:            parseText(rec[models.RawMake]),
		Model:            parseText(rec[models.ColModel]),
		Year:             parseInt(rec[models.ColYear]),
		MileageKm:        parseFloat(rec[models.RawKilometer]),
		FuelType:         parseText(rec[models.ColFuelType]),
		Transmission:     parseText(rec[models.ColTransmission]),
		Color:            parseText(rec[models.ColColor]),
		Owner:            OwnerCode(rec[models.ColOwner]),
		SellerType:       parseText(rec[models.ColSellerType]),
		EngineCapacityCC: t.extract(t.integerPattern, rec[models.RawEngine]),
		Drivetrain:       parseText(rec[models.ColDrivetrain]),
		SeatingCapacity:  parseInt(rec[models.ColSeatingCapacity]),
		FuelTankCapacity: parseFloat(rec[models.ColFuelTankCapacity]),
	}

	if price := parseFloat(rec[models.RawPrice]); price != nil {
		usd := *price / INRPerUSD
		out.PriceUSD = &usd
	}

	power, powerRPM := t.splitDual(rec[models.RawMaxPower])
	if power != nil {
		hp := *power * HPPerBHP
		out.MaxPowerHP = &hp
	}

	out.MaxPowerRPM = powerRPM
	out.MaxTorqueNm, out.MaxTorqueRPM = t.splitDual(rec[models.RawMaxTorque])

	return out
}

// ExtractNumber returns the first decimal number in s, or nil when there is none.
func (t *Transformer) ExtractNumber(s string) *float64 {
	return t.extract(t.decimalPattern, s)
}

// ExtractRPM returns the integer following the first "@" marker in s, or nil.
func (t *Transformer) ExtractRPM(s string) *int {
	m := t.rpmPattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}

	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	return &v
}

// splitDual reads a "<magnitude> <unit> @ <rpm> rpm" string. The two searches are
// independent, so either half may be missing without affecting the other.
// With no leading magnitude, as in "@ 6000 rpm", the magnitude search finds the rpm digits.
func (t *Transformer) splitDual(s string) (*float64, *int) {
	return t.ExtractNumber(s), t.ExtractRPM(s)
}

func (t *Transformer) extract(pattern *regexp.Regexp, s string) *float64 {
	m := pattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}

	return parseFloat(m[1])
}

// OwnerCode maps the owner vocabulary onto 1..5. The unregistered sentinel and
// any unknown value are missing.
func OwnerCode(s string) *int {
	s = strings.TrimSpace(s)
	if s == UnregisteredOwner {
		return nil
	}

	code, ok := ownerCodes[s]
	if !ok {
		return nil
	}

	return &code
}

func parseText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

// parseInt also accepts integral floats such as "7.0", which is how a column
// with gaps comes back from a previous export.
func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}

	f := parseFloat(s)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}

	v := int(*f)

	return &v
}
