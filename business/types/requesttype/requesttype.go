// Package requesttype represents the maintenance request type in the system.
package requesttype

import "fmt"

// The set of request types that can be used.
var (
	Corrective = newRequestType("CORRECTIVE")
	Preventive = newRequestType("PREVENTIVE")
)

// =============================================================================

// Set of known request types.
var requestTypes = make(map[string]RequestType)

// RequestType represents a maintenance request type in the system.
type RequestType struct {
	value string
}

func newRequestType(requestType string) RequestType {
	rt := RequestType{requestType}
	requestTypes[requestType] = rt
	return rt
}

// String returns the name of the request type.
func (rt RequestType) String() string {
	return rt.value
}

// Equal provides support for the go-cmp package and testing.
func (rt RequestType) Equal(rt2 RequestType) bool {
	return rt.value == rt2.value
}

// MarshalText provides support for logging and any marshal needs.
func (rt RequestType) MarshalText() ([]byte, error) {
	return []byte(rt.value), nil
}

// =============================================================================

// All returns the complete set of request types in a stable order.
func All() []RequestType {
	return []RequestType{Corrective, Preventive}
}

// Parse parses the string value and returns a request type if one exists.
func Parse(value string) (RequestType, error) {
	requestType, exists := requestTypes[value]
	if !exists {
		return RequestType{}, fmt.Errorf("invalid request type %q", value)
	}

	return requestType, nil
}

// MustParse parses the string value and returns a request type if one exists.
// If an error occurs the function panics.
func MustParse(value string) RequestType {
	requestType, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return requestType
}
