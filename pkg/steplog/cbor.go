package steplog

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// maxStateVars bounds the State map of a decoded event so a corrupt trace
// cannot make the reader allocate without limit.
const maxStateVars = 1 << 16

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = newEncMode(); err != nil {
		panic(fmt.Sprintf("steplog: CBOR encoder mode: %v", err))
	}
	if decMode, err = newDecMode(); err != nil {
		panic(fmt.Sprintf("steplog: CBOR decoder mode: %v", err))
	}
}

// newEncMode returns the encoder for trace events. Step events are mostly
// State floats, so every float is written in the shortest width that holds
// it exactly; duration.Duration fields already encode themselves that way.
// NaN and infinities keep their meaning in half precision.
func newEncMode() (cbor.EncMode, error) {
	return cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
		ShortestFloat: cbor.ShortestFloat16,
		NaNConvert:    cbor.NaNConvert7e00,
		InfConvert:    cbor.InfConvertFloat16,
	}.EncMode()
}

func newDecMode() (cbor.DecMode, error) {
	return cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		MaxMapPairs:       maxStateVars,
	}.DecMode()
}

// EncodeEvent encodes an Event to CBOR bytes.
func EncodeEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder creates a CBOR encoder for trace events that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for trace events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
