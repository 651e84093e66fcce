package dashboard

import (
	"math"
	"testing"

	"github.com/kc0bfv/power-sensor-monitor/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPowerStatus(t *testing.T) {
	cases := []struct {
		name string
		diff models.Series
		want string
	}{
		{"above threshold", models.Series{0, 11}, "ON"},
		{"at threshold", models.Series{50, 10}, "OFF"},
		{"just below", models.Series{9.999}, "OFF"},
		{"no samples", nil, "OFF"},
		{"nan", models.Series{math.NaN()}, "OFF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PowerStatus(tc.diff, DefaultStatusThreshold))
		})
	}
}

func TestPowerSourceIndicator(t *testing.T) {
	assert.Equal(t, 1.0, PowerSourceIndicator(`"VIN"`))
	assert.Equal(t, 0.0, PowerSourceIndicator("VIN"))
	assert.Equal(t, 0.0, PowerSourceIndicator(`"BAT"`))
	assert.Equal(t, 0.0, PowerSourceIndicator(""))
}

func TestReadKey(t *testing.T) {
	assert.Equal(t, "uXXa2TtQavZWApSj3amg", ReadKey("http://example.org/index.html#uXXa2TtQavZWApSj3amg"))
	assert.Equal(t, "a%20b#c", ReadKey("http://example.org/#a%20b#c"))
	assert.Equal(t, "", ReadKey("http://example.org/#"))
	assert.Equal(t, "", ReadKey("http://example.org/"))
}
