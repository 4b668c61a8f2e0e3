package app

import (
	"github.com/custodia-one/custodia"
	"github.com/custodia-one/custodia/errors"
	"github.com/gogo/protobuf/proto"
)

// ResultSet is a list of raw values returned by one query. Keys and
// values travel in two parallel sets of the same size.
type ResultSet struct {
	Results [][]byte
}

var _ custodia.Persistent = (*ResultSet)(nil)

// Marshal stores every result as a repeated length-delimited field.
func (rs *ResultSet) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	for _, res := range rs.Results {
		_ = buf.EncodeVarint(1<<3 | 2)
		_ = buf.EncodeRawBytes(res)
	}
	return buf.Bytes(), nil
}

func (rs *ResultSet) Unmarshal(data []byte) error {
	*rs = ResultSet{}
	for len(data) > 0 {
		tag, n := proto.DecodeVarint(data)
		if n == 0 {
			return errors.Wrap(errors.ErrInvalidInput, "broken field tag")
		}
		if tag != 1<<3|2 {
			return errors.ErrInvalidInput.Newf("unexpected field tag %d", tag)
		}
		data = data[n:]
		size, n := proto.DecodeVarint(data)
		if n == 0 || uint64(len(data)-n) < size {
			return errors.Wrap(errors.ErrInvalidInput, "broken field size")
		}
		res := append([]byte(nil), data[n:n+int(size)]...)
		rs.Results = append(rs.Results, res)
		data = data[n+int(size):]
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []custodia.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []custodia.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes them a consistent whole again
func JoinResults(keys, values *ResultSet) ([]custodia.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "mismatched result set size")
	}
	mods := make([]custodia.Model, len(kref))
	for i := range mods {
		mods[i] = custodia.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// if it is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o custodia.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
