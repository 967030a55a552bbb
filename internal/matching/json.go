package matching

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON decodes data using json.Number for numeric literals, so integer
// values compare textually rather than losing precision through float64.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

// JSONEqual reports whether a and b are equal under JSON value equality:
// object key order and whitespace are irrelevant, and numbers compare
// textually when both are integers, otherwise to double precision. a and b
// may each be built either by DecodeJSON (json.Number leaves) or as plain
// Go literals (float64/int/... leaves, as passed to Json/PartialJson); both
// shapes are normalized to json.Number before comparing so the two sources
// agree on what "equal" means for a number.
func JSONEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, aval := range av {
			bval, ok := bv[k]
			if !ok || !JSONEqual(aval, bval) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !JSONEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		if an, ok := asJSONNumber(a); ok {
			bn, ok := asJSONNumber(b)
			return ok && numbersEqual(an, bn)
		}
		return a == b
	}
}

// JSONSubset reports whether every path present in sub also exists in full
// with an equal value. Arrays match element-wise at the same indices; extra
// object keys and extra array elements in full are tolerated. As with
// JSONEqual, number leaves are normalized before comparing regardless of
// whether sub or full came from DecodeJSON or from Go literals.
func JSONSubset(sub, full any) bool {
	switch sv := sub.(type) {
	case map[string]any:
		fv, ok := full.(map[string]any)
		if !ok {
			return false
		}
		for k, subVal := range sv {
			fullVal, ok := fv[k]
			if !ok || !JSONSubset(subVal, fullVal) {
				return false
			}
		}
		return true
	case []any:
		fv, ok := full.([]any)
		if !ok || len(fv) < len(sv) {
			return false
		}
		for i := range sv {
			if !JSONSubset(sv[i], fv[i]) {
				return false
			}
		}
		return true
	default:
		if sn, ok := asJSONNumber(sub); ok {
			fn, ok := asJSONNumber(full)
			return ok && numbersEqual(sn, fn)
		}
		return sub == full
	}
}

// asJSONNumber reports whether v is a JSON number — either already decoded
// as json.Number, or one of the numeric types a Go literal produces — and
// returns it in json.Number form. Marshaling a Go numeric literal and
// re-reading it as text is the same encoding json.Number itself uses, so
// this yields identical text for identical values regardless of source.
func asJSONNumber(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		data, err := json.Marshal(n)
		if err != nil {
			return "", false
		}
		return json.Number(data), true
	default:
		return "", false
	}
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	ai, aErr := a.Int64()
	bi, bErr := b.Int64()
	if aErr == nil && bErr == nil {
		return ai == bi
	}
	af, aErr := a.Float64()
	bf, bErr := b.Float64()
	return aErr == nil && bErr == nil && af == bf
}
