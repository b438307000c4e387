package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeQuery(t *testing.T) {
	now := time.Date(2024, time.March, 31, 15, 0, 0, 0, time.UTC)

	from, to, err := RangeQuery{}.Range(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), to)
	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), from)

	from, to, err = RangeQuery{From: "2024-01-01", To: "2024-01-01"}.Range(now)
	require.NoError(t, err)
	assert.Equal(t, from, to)

	_, _, err = RangeQuery{From: "2024-02-01", To: "2024-01-01"}.Range(now)
	assert.Error(t, err)
	_, _, err = RangeQuery{To: "tomorrow"}.Range(now)
	assert.Error(t, err)
}
