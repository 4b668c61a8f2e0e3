package orm

import (
	"github.com/custodia-one/custodia/errors"
)

//---- CounterModel

// CounterModel is the simplest possible persistent model, a wrapper
// around an integer. It is used to test the bucket implementations and
// may serve as a template for writing new models.
type CounterModel struct {
	Count int64
}

var _ CloneableData = (*CounterModel)(nil)

// Marshal encodes the count as 8 byte big endian
func (c *CounterModel) Marshal() ([]byte, error) {
	return EncodeSequence(uint64(c.Count)), nil
}

// Unmarshal parses 8 byte big endian into the count
func (c *CounterModel) Unmarshal(raw []byte) error {
	val, err := DecodeSequence(raw)
	if err != nil {
		return err
	}
	c.Count = int64(val)
	return nil
}

// Validate rejects negative counts
func (c *CounterModel) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "count cannot be negative")
	}
	return nil
}

// Copy produces a new independent copy
func (c *CounterModel) Copy() CloneableData {
	return &CounterModel{Count: c.Count}
}

// NewCounterBucket creates a bucket for storing counters
func NewCounterBucket(name string) Bucket {
	return NewBucket(name, NewSimpleObj(nil, new(CounterModel)))
}
