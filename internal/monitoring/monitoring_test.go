package monitoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordEvent(t *testing.T) {
	s := NewService()

	s.RecordEvent("sample_stored", map[string]string{"read_key": "r1"})
	s.RecordEvent("sample_stored", nil)
	s.RecordEvent("monitor_alert", nil)

	assert.Equal(t, int64(2), s.Count("sample_stored"))
	assert.Equal(t, int64(1), s.Count("monitor_alert"))
	assert.Equal(t, int64(0), s.Count("never"))
}

func TestGetEventMetrics_Sorted(t *testing.T) {
	s := NewService()
	s.RecordEvent("b", nil)
	s.RecordEvent("a", nil)

	snap := s.GetEventMetrics()

	assert.NotEmpty(t, snap.Uptime)
	assert.Len(t, snap.Events, 2)
	assert.Equal(t, "a", snap.Events[0].Name)
	assert.False(t, snap.Events[0].LastSeen.IsZero())
}

func TestRecordEvent_Concurrent(t *testing.T) {
	s := NewService()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordEvent("x", nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), s.Count("x"))
}

func TestFormatLabels(t *testing.T) {
	assert.Equal(t, "a=1,b=2", formatLabels(map[string]string{"b": "2", "a": "1"}))
	assert.Equal(t, "", formatLabels(nil))
}
