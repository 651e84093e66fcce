package dashboard

import "github.com/kc0bfv/power-sensor-monitor/internal/models"

const (
	StatusOn  = "ON"
	StatusOff = "OFF"

	// DefaultStatusThreshold is the min/max swing above which mains power
	// is considered on.
	DefaultStatusThreshold = 10.0

	// VINTag is the power source field, quotes included, of a unit running
	// on mains electricity.
	VINTag = `"VIN"`
)

// PowerStatus judges only the newest PowerDiff value. No samples, or a
// NaN newest value, reads as OFF.
func PowerStatus(powerDiff models.Series, threshold float64) string {
	last, ok := powerDiff.Last()
	if ok && last > threshold {
		return StatusOn
	}
	return StatusOff
}

// PowerSourceIndicator maps the power source tag to 1 for VIN, 0 otherwise.
func PowerSourceIndicator(tag string) float64 {
	if tag == VINTag {
		return 1
	}
	return 0
}
