package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github/splitpot/go-relay/internal/ledger"
)

func TestEncoderUleb128(t *testing.T) {
	cases := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, tc := range cases {
		encoded := ledger.NewEncoder().Uleb128(tc.value).Encoded()
		assert.Equal(t, tc.expected, encoded, "uleb128(%d)", tc.value)
	}
}

func TestEncoderU64LittleEndian(t *testing.T) {
	encoded := ledger.NewEncoder().U64(0x0102030405060708).Encoded()
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, encoded)
}

func TestEncoderLengthPrefixedBytes(t *testing.T) {
	encoded := ledger.NewEncoder().Bytes([]byte{0xaa, 0xbb}).Encoded()
	assert.Equal(t, []byte{0x02, 0xaa, 0xbb}, encoded)

	encoded = ledger.NewEncoder().String("abc").Encoded()
	assert.Equal(t, []byte{0x03, 'a', 'b', 'c'}, encoded)
}

func TestEncoderBool(t *testing.T) {
	assert.Equal(t, []byte{0x01}, ledger.NewEncoder().Bool(true).Encoded())
	assert.Equal(t, []byte{0x00}, ledger.NewEncoder().Bool(false).Encoded())
}

func TestEncoderChaining(t *testing.T) {
	encoded := ledger.NewEncoder().U8(0x2a).Uleb128(1).Bool(true).Encoded()
	assert.Equal(t, []byte{0x2a, 0x01, 0x01}, encoded)
}

func TestEncodedReturnsCopy(t *testing.T) {
	e := ledger.NewEncoder().U8(0x01)
	first := e.Encoded()
	first[0] = 0xff

	assert.Equal(t, []byte{0x01}, e.Encoded())
}
