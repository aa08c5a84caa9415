package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EncodeArguments converts JSON-level primitive arguments into BCS-encoded
// entry-function arguments. Supported inputs per element:
//   - bool
//   - float64 (JSON number, must be a non-negative integer) -> u64
//   - string holding a base-10 integer -> u64
//   - string with 0x prefix -> account address
//   - any other string -> BCS string
//   - []any of the above -> vector
func EncodeArguments(values []any) ([][]byte, error) {
	out := make([][]byte, 0, len(values))

	for i, v := range values {
		e := NewEncoder()
		if err := encodeArgument(e, v); err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		out = append(out, e.Encoded())
	}

	return out, nil
}

func encodeArgument(e *Encoder, v any) error {
	switch val := v.(type) {
	case bool:
		e.Bool(val)
	case float64:
		if val < 0 || val != math.Trunc(val) {
			return errors.Errorf("number %v is not a non-negative integer", val)
		}
		e.U64(uint64(val))
	case string:
		if strings.HasPrefix(val, "0x") {
			addr, err := ParseAddress(val)
			if err != nil {
				return err
			}
			e.FixedBytes(addr[:])
			return nil
		}

		if n, err := strconv.ParseUint(val, 10, 64); err == nil {
			e.U64(n)
			return nil
		}

		e.String(val)
	case []any:
		e.Uleb128(uint32(len(val)))
		for _, elem := range val {
			if err := encodeArgument(e, elem); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("unsupported argument type %T", v)
	}

	return nil
}
