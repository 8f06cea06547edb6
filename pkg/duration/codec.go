package duration

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// A Duration is serialized as a single float64 number of seconds in every
// format, never as a record.

// encMode is the CBOR encoder mode for durations.
// Floats are shrunk to float16/float32 only when no precision is lost.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for durations.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		ShortestFloat: cbor.ShortestFloat16,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create duration CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create duration CBOR decoder mode: %v", err))
	}
}

// MarshalCBOR encodes d as a CBOR float. NaN and infinities are preserved.
func (d Duration) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(d.secs)
}

// UnmarshalCBOR decodes any CBOR float or integer as a number of seconds.
func (d *Duration) UnmarshalCBOR(data []byte) error {
	var secs float64
	if err := decMode.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("failed to decode duration: %w", err)
	}
	*d = Seconds(secs)
	return nil
}

// MarshalJSON encodes d as a JSON number. JSON has no representation for
// NaN or infinities, so those fail to encode.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.secs)
}

// UnmarshalJSON decodes a JSON number as a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("failed to decode duration: %w", err)
	}
	*d = Seconds(secs)
	return nil
}

// MarshalYAML encodes d as a YAML float (.inf and .nan included).
func (d Duration) MarshalYAML() (any, error) {
	return d.secs, nil
}

// UnmarshalYAML decodes a YAML number as a number of seconds. Strings are
// accepted too and parsed with Parse, so "90s" and "1.5 hours" both work.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("failed to decode duration: line %d: expected a scalar", value.Line)
	}

	var secs float64
	if err := value.Decode(&secs); err == nil {
		*d = Seconds(secs)
		return nil
	}

	parsed, err := Parse(value.Value)
	if err != nil {
		return fmt.Errorf("failed to decode duration: line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ cbor.Marshaler   = Duration{}
	_ cbor.Unmarshaler = (*Duration)(nil)
	_ json.Marshaler   = Duration{}
	_ json.Unmarshaler = (*Duration)(nil)
	_ yaml.Marshaler   = Duration{}
	_ yaml.Unmarshaler = (*Duration)(nil)
)
