package proto

import (
	"strconv"

	"github.com/rileyhilliard/rfdash/internal/errors"
)

// keepZero stores v unless it is zero, which the server sends for "no change".
func keepZero(dst *int64, v int64) {
	if v != 0 {
		*dst = v
	}
}

// fieldDecoder walks positional fields and remembers the first failure.
// Once err is set every later read is a no-op returning the zero value.
type fieldDecoder struct {
	record string
	fields []string
	pos    int
	err    error
}

func (d *fieldDecoder) next() (string, int) {
	i := d.pos
	d.pos++
	return d.fields[i], i
}

func (d *fieldDecoder) nextInt64() (int64, bool) {
	if d.err != nil {
		return 0, false
	}
	s, i := d.next()
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d.err = errors.NewProto(d.record, i, s, err)
		return 0, false
	}
	return v, true
}

func (d *fieldDecoder) nextInt() (int, bool) {
	v, ok := d.nextInt64()
	return int(v), ok
}

func (d *fieldDecoder) nextString() string {
	if d.err != nil {
		return ""
	}
	s, _ := d.next()
	return s
}

// int64s fills dsts in order, stopping at the first bad field.
func (d *fieldDecoder) int64s(dsts ...*int64) {
	for _, dst := range dsts {
		v, ok := d.nextInt64()
		if !ok {
			return
		}
		*dst = v
	}
}

// ints fills dsts in order, stopping at the first bad field.
func (d *fieldDecoder) ints(dsts ...*int) {
	for _, dst := range dsts {
		v, ok := d.nextInt()
		if !ok {
			return
		}
		*dst = v
	}
}
