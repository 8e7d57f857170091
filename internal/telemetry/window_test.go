package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		sentinel int
		expected int
	}{
		{"default capacity", 0, 0, DefaultCapacity},
		{"negative capacity", -3, NoSignal, DefaultCapacity},
		{"custom capacity", 10, NoSignal, 10},
		{"single slot", 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.capacity, tt.sentinel)
			require.NotNil(t, w)
			assert.Equal(t, tt.expected, w.Len())
			assert.Equal(t, tt.expected, w.Capacity())
			for _, v := range w.Values() {
				assert.Equal(t, tt.sentinel, v)
			}
		})
	}
}

func TestWindowKeepsLastCapacityValues(t *testing.T) {
	w := NewWindow(5, NoSignal)

	for i := 1; i <= 8; i++ {
		w.Push(i)
		assert.Equal(t, 5, w.Len(), "length must never change")
	}

	assert.Equal(t, []int{4, 5, 6, 7, 8}, w.Values())
	assert.Equal(t, 8, w.Last())
}

func TestWindowPartialFill(t *testing.T) {
	w := NewWindow(4, 0)
	w.Push(7)
	w.Push(9)

	assert.Equal(t, []int{0, 0, 7, 9}, w.Values())
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(3, NoSignal)
	w.Push(-40)
	w.Push(-50)

	w.Reset()

	assert.Equal(t, []int{NoSignal, NoSignal, NoSignal}, w.Values())
	w.Push(-60)
	assert.Equal(t, []int{NoSignal, NoSignal, -60}, w.Values())
}

func TestWindowValuesIsACopy(t *testing.T) {
	w := NewWindow(3, 0)
	w.Push(1)

	vals := w.Values()
	vals[2] = 99

	assert.Equal(t, 1, w.Last())
}

func TestWindowFloats(t *testing.T) {
	w := NewWindow(3, 0)
	w.Push(2)
	w.Push(5)

	assert.Equal(t, []float64{0, 2, 5}, w.Floats())
}

func TestDeltaSampler(t *testing.T) {
	var d DeltaSampler
	assert.False(t, d.Primed())

	var got []int64
	for _, v := range []int64{0, 150, 150, 400} {
		got = append(got, d.Sample(v))
	}
	assert.Equal(t, []int64{0, 150, 0, 250}, got)
	assert.True(t, d.Primed())
}

func TestDeltaSamplerFirstSampleIsRaw(t *testing.T) {
	var d DeltaSampler
	assert.Equal(t, int64(5000), d.Sample(5000))
	assert.Equal(t, int64(10), d.Sample(5010))
}

func TestDeltaSamplerNegativeDelta(t *testing.T) {
	var d DeltaSampler
	d.Sample(500)
	assert.Equal(t, int64(-480), d.Sample(20), "counter drops are surfaced")
	assert.Equal(t, int64(5), d.Sample(25))
}

func TestDeltaSamplerReset(t *testing.T) {
	var d DeltaSampler
	d.Sample(100)
	d.Sample(200)

	d.Reset()
	assert.False(t, d.Primed())
	assert.Equal(t, int64(300), d.Sample(300))
}
