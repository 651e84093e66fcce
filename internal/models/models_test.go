package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRecord_UnmarshalEntryArray(t *testing.T) {
	payload := `[{"published_at": "2022-02-14T03:42:08.865Z", "data": "39, 66, 478, 544, 0, 19, 98.062500, \"VIN\""}]`

	var rec RawRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	require.Equal(t, 1, rec.Len())
	assert.Equal(t, []string{"2022-02-14T03:42:08.865Z"}, rec.PublishedAt())
	assert.Equal(t, []string{`39, 66, 478, 544, 0, 19, 98.062500, "VIN"`}, rec.Data())
}

func TestRawRecord_UnmarshalColumns(t *testing.T) {
	payload := `{"published_at": ["a", "b"], "data": ["1"]}`

	var rec RawRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	assert.Equal(t, []Entry{{PublishedAt: "a", Data: "1"}, {PublishedAt: "b"}}, rec.Entries)
}

func TestRawRecord_MarshalEmpty(t *testing.T) {
	b, err := json.Marshal(RawRecord{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestRawRecord_Last(t *testing.T) {
	rec := RawRecord{Entries: []Entry{{Data: "1"}, {Data: "2"}, {Data: "3"}}}

	assert.Equal(t, []string{"2", "3"}, rec.Last(2).Data())
	assert.Equal(t, 3, rec.Last(10).Len())
}

func TestSeries_MarshalGaps(t *testing.T) {
	b, err := json.Marshal(Series{1.5, math.NaN(), 13, math.Inf(1)})
	require.NoError(t, err)
	assert.Equal(t, `[1.5,null,13,null]`, string(b))
}

func TestSeries_Last(t *testing.T) {
	_, ok := Series{}.Last()
	assert.False(t, ok)

	v, ok := Series{1, 2}.Last()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}
