package x

// Validater is implemented by any struct that can be validated
// before storing or processing.
//
// Sadly cannot be named Validator, as that is used by tendermint
// for the consensus processes.
type Validater interface {
	Validate() error
}
