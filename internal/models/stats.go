package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrUnknownField     = errors.New("unknown stat field")
)

// Timeframe is a fixed reporting window
type Timeframe string

const (
	TimeframeToday      Timeframe = "today"
	TimeframeLast7Days  Timeframe = "last7Days"
	TimeframeLast30Days Timeframe = "last30Days"
	TimeframeAllTime    Timeframe = "allTime"
)

var timeframes = []Timeframe{TimeframeToday, TimeframeLast7Days, TimeframeLast30Days, TimeframeAllTime}

// AllTimeframes returns every timeframe in display order
func AllTimeframes() []Timeframe {
	out := make([]Timeframe, len(timeframes))
	copy(out, timeframes)
	return out
}

// ParseTimeframe validates a raw timeframe value
func ParseTimeframe(s string) (Timeframe, error) {
	for _, tf := range timeframes {
		if string(tf) == s {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeframe, s)
}

// Order returns the position of the timeframe in display order
func (t Timeframe) Order() int {
	for i, tf := range timeframes {
		if tf == t {
			return i
		}
	}
	return len(timeframes)
}

// StatKind describes the numeric domain of a stat field
type StatKind int

const (
	KindCount StatKind = iota
	KindCurrency
	KindDecimal
	KindInteger
)

// StatField is one of the overridable seller metrics
type StatField string

const (
	FieldOrders      StatField = "orders"
	FieldSales       StatField = "sales"
	FieldRevenue     StatField = "revenue"
	FieldProducts    StatField = "products"
	FieldCustomers   StatField = "customers"
	FieldVisitors    StatField = "visitors"
	FieldFollowers   StatField = "followers"
	FieldRating      StatField = "rating"
	FieldCreditScore StatField = "creditScore"
)

type fieldSpec struct {
	kind      StatKind
	min       float64
	max       float64 // math.Inf(1) when unbounded
	invariant bool
	def       float64
}

var fieldSpecs = map[StatField]fieldSpec{
	FieldOrders:      {kind: KindCount, min: 0, max: math.Inf(1)},
	FieldSales:       {kind: KindCurrency, min: 0, max: math.Inf(1)},
	FieldRevenue:     {kind: KindCurrency, min: 0, max: math.Inf(1)},
	FieldProducts:    {kind: KindCount, min: 0, max: math.Inf(1)},
	FieldCustomers:   {kind: KindCount, min: 0, max: math.Inf(1)},
	FieldVisitors:    {kind: KindCount, min: 0, max: math.Inf(1)},
	FieldFollowers:   {kind: KindCount, min: 0, max: math.Inf(1), invariant: true},
	FieldRating:      {kind: KindDecimal, min: 1, max: 5, invariant: true, def: 4.5},
	FieldCreditScore: {kind: KindInteger, min: 300, max: 850, invariant: true, def: 750},
}

// statFields keeps a stable order for responses and exports
var statFields = []StatField{
	FieldOrders, FieldSales, FieldRevenue, FieldProducts, FieldCustomers,
	FieldVisitors, FieldFollowers, FieldRating, FieldCreditScore,
}

// AllStatFields returns every stat field in display order
func AllStatFields() []StatField {
	out := make([]StatField, len(statFields))
	copy(out, statFields)
	return out
}

// ParseStatField validates a raw field name
func ParseStatField(s string) (StatField, error) {
	f := StatField(s)
	if _, ok := fieldSpecs[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

func (f StatField) Kind() StatKind { return fieldSpecs[f].kind }

// IsTimeframeInvariant reports whether the field is always read from the allTime bucket
func (f StatField) IsTimeframeInvariant() bool { return fieldSpecs[f].invariant }

// Default is the value shown when neither an override nor a real value exists
func (f StatField) Default() float64 { return fieldSpecs[f].def }

// FieldError describes a single rejected field
type FieldError struct {
	Field   StatField `json:"field"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks value against the field's declared bounds and kind.
// Out-of-range values are rejected, never clamped.
func (f StatField) Validate(value float64) *FieldError {
	spec, ok := fieldSpecs[f]
	if !ok {
		return &FieldError{Field: f, Message: "unknown field"}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &FieldError{Field: f, Message: "must be a finite number"}
	}

	switch spec.kind {
	case KindCount, KindInteger:
		if value != math.Trunc(value) {
			return &FieldError{Field: f, Message: "must be a whole number"}
		}
	case KindCurrency:
		if decimal.NewFromFloat(value).Exponent() < -2 {
			return &FieldError{Field: f, Message: "must have at most 2 decimal places"}
		}
	}

	if value < spec.min || value > spec.max {
		if math.IsInf(spec.max, 1) {
			return &FieldError{Field: f, Message: fmt.Sprintf("must be >= %s", formatBound(spec.min))}
		}
		return &FieldError{Field: f, Message: fmt.Sprintf("must be between %s and %s", formatBound(spec.min), formatBound(spec.max))}
	}
	return nil
}

func formatBound(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// StatValues maps stat fields to numeric values
type StatValues map[StatField]float64

// RealStats holds the fields an external provider reported. A missing key means not reported.
type RealStats map[StatField]float64
