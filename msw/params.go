package msw

import "fmt"

// Default values for the recognized options.
const (
	DefaultNN                 = 5
	DefaultInitIndexAttempts  = 2
	DefaultInitSearchAttempts = 10
)

// Params is a named-option map. Recognized options:
//
//	NN                 int   neighbors to connect per insertion (default 5)
//	initIndexAttempts  int   walker attempts per insertion (default 2)
//	initSearchAttempts int   walker attempts per query (default 10)
//	indexThreadQty     int   parallel build workers, <= 1 means serial
//	                         (default runtime.NumCPU())
//	seed               int64 RNG seed (default from core.GetSeed())
//	printProgress      bool  show a progress bar during Build (default false)
//
// Unknown options are ignored. A recognized option of the wrong type fails
// with ErrBadParameter.
type Params map[string]interface{}

// intValue returns the named option as an int, or def when absent.
func (p Params) intValue(name string, def int) (int, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: option %q must be an integer, got %T", ErrBadParameter, name, raw)
	}
}

// int64Value returns the named option as an int64, or def when absent.
func (p Params) int64Value(name string, def int64) (int64, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: option %q must be an integer, got %T", ErrBadParameter, name, raw)
	}
}

// boolValue returns the named option as a bool, or def when absent.
func (p Params) boolValue(name string, def bool) (bool, error) {
	raw, ok := p[name]
	if !ok {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: option %q must be a bool, got %T", ErrBadParameter, name, raw)
	}
	return v, nil
}
