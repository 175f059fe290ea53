package param

import (
	"reflect"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// InferType determines the type of a sample value. multiple is true when
// the sample is a sequence, in which case the type is inferred from its
// first element (an empty sequence infers from nil).
//
// Priority: nil, numbers, booleans, dates, patterns, uuids, sequences,
// and String for anything else.
func InferType(sample any) (t Type, multiple bool) {
	if isNil(sample) {
		// nil slices are still sequences
		if sample != nil && reflect.TypeOf(sample).Kind() == reflect.Slice && reflect.TypeOf(sample) != BytesType {
			return String, true
		}
		return String, false
	}

	switch sample.(type) {
	case bool:
		return Boolean, false
	case time.Time:
		return Date, false
	case *regexp.Regexp:
		return Pattern, false
	case uuid.UUID:
		return UUID, false
	}

	if isNumber(sample) {
		return Number, false
	}

	if seq, ok := toSlice(sample); ok {
		var first any
		if len(seq) > 0 {
			first = seq[0]
		}
		t, _ = InferType(first)
		return t, true
	}

	return String, false
}
