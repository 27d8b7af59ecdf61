package layout

// This file defines unit-safe types and helpers for length conversion.
// Page geometry enters in inches (the poster domain), layout works in
// millimeters, and font sizes cross into points at the render boundary.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants between pt, mm and in.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	InToMm = 25.4
	MmToIn = 1.0 / InToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to target unit. Supported targets: UnitMM, UnitPT, UnitIN.
func (l Length) To(target Unit) float64 {
	mm := l.Value
	switch l.Unit {
	case UnitMM:
		mm = l.Value
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * InToMm
	case UnitPT:
		mm = l.Value * PtToMm
	case UnitNone:
		// Treat as same numeric in target if needed by caller; usually not used for absolute lengths.
		return l.Value
	}
	switch target {
	case UnitPT:
		return mm * MmToPt
	case UnitIN:
		return mm * MmToIn
	default:
		return mm
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }
func (l Length) ToIN() float64 { return l.To(UnitIN) }
