// FilePath: internal/monitor/check.go
package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/kc0bfv/power-sensor-monitor/internal/dashboard"
	"github.com/kc0bfv/power-sensor-monitor/internal/labels"
	"github.com/kc0bfv/power-sensor-monitor/internal/listx"
	"github.com/kc0bfv/power-sensor-monitor/internal/models"
)

// Alert texts
const (
	AlertBulbsOut    = "Bulbs may be out"
	AlertPowerOff    = "Power is off to the sensor"
	AlertStaleData   = "Sensor hasn't reported enough recent data"
	alertBadStampFmt = "Invalid datetimes received: %s"
)

const (
	minField = 4
	maxField = 5
	tagField = 7
)

// Options tune the health check.
type Options struct {
	// DiffThreshold is the smallest max-min spread that counts as lit.
	DiffThreshold float64
	// DiffsToCheck is how many of the newest samples are inspected.
	DiffsToCheck int
	// MaxAge bounds how old a sample may be and still count as recent.
	MaxAge time.Duration
}

func DefaultOptions() Options {
	return Options{
		DiffThreshold: dashboard.DefaultStatusThreshold,
		DiffsToCheck:  4,
		MaxAge:        24 * time.Hour,
	}
}

// Check inspects the newest samples of record and returns every alert that
// applies, in a fixed order. An empty result means the sensor looks healthy.
func Check(record *models.RawRecord, now time.Time, opts Options) []string {
	recent := record.Last(opts.DiffsToCheck)
	rows := listx.Map(recent.Data(), func(d string) []string {
		return listx.TrimAll(strings.Split(d, ","))
	})
	stamps := recent.PublishedAt()

	mins := listx.MapNumbers(listx.SelectColumnOr(minField, rows, labels.Undefined))
	maxs := listx.MapNumbers(listx.SelectColumnOr(maxField, rows, labels.Undefined))
	bigDiffs := 0
	for _, diff := range listx.Difference(maxs, mins) {
		// NaN compares false
		if diff > opts.DiffThreshold {
			bigDiffs++
		}
	}

	onVIN := true
	for _, tag := range listx.SelectColumnOr(tagField, rows, labels.Undefined) {
		if tag != dashboard.VINTag {
			onVIN = false
		}
	}

	zulu, fresh := 0, 0
	for _, stamp := range stamps {
		if !strings.HasSuffix(stamp, "Z") {
			continue
		}
		zulu++
		at, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			continue
		}
		if now.Sub(at) < opts.MaxAge {
			fresh++
		}
	}

	var alerts []string
	if bigDiffs < opts.DiffsToCheck-2 {
		alerts = append(alerts, AlertBulbsOut)
	}
	if !onVIN {
		alerts = append(alerts, AlertPowerOff)
	}
	if zulu < opts.DiffsToCheck {
		alerts = append(alerts, fmt.Sprintf(alertBadStampFmt, quoteList(stamps)))
	}
	if fresh < opts.DiffsToCheck-2 {
		alerts = append(alerts, AlertStaleData)
	}
	return alerts
}

// quoteList renders stamps the way the alert mail always has: ['a', 'b'].
func quoteList(xs []string) string {
	quoted := listx.Map(xs, func(s string) string {
		if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
			return `"` + s + `"`
		}
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	})
	return "[" + strings.Join(quoted, ", ") + "]"
}
