package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool(int64(1)))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("YES"))
	assert.True(t, ToBool([]byte("1")))

	assert.False(t, ToBool(false))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool(nil))
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(42), ToInt64(42))
	assert.Equal(t, int64(42), ToInt64(int64(42)))
	assert.Equal(t, int64(42), ToInt64(float64(42)))
	assert.Equal(t, int64(42), ToInt64("42"))
	assert.Equal(t, int64(42), ToInt64([]byte(" 42 ")))
	assert.Equal(t, int64(0), ToInt64(nil))
	assert.Equal(t, int64(0), ToInt64("not a number"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "hello", ToString("hello"))
	assert.Equal(t, "hello", ToString([]byte("hello")))
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "7", ToString(7))
}

func TestToTime(t *testing.T) {
	want := time.Date(2026, 8, 23, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, want, ToTime("2026-08-23 14:05:00"))
	assert.Equal(t, want, ToTime([]byte("2026-08-23 14:05:00")))
	assert.Equal(t, want, ToTime(want))
	assert.True(t, ToTime("garbage").IsZero())
	assert.True(t, ToTime(nil).IsZero())

	// RFC3339 input is also accepted
	got := ToTime("2026-08-23T14:05:00Z")
	assert.Equal(t, want, got.UTC())
}
