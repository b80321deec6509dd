package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnnycuongn/sp-app/internal/encoding"
)

func TestUTF8Reader_Passthrough(t *testing.T) {
	input := "date;supplier;outlet;total;status;payment\n2024-01-05;Café Júnior;Downtown;12.50;paid;Visa\n"
	r, err := encoding.UTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestUTF8Reader_Windows1252(t *testing.T) {
	// "Café Júnior" in Windows-1252: é = 0xE9, ú = 0xFA.
	input := []byte{
		'C', 'a', 'f', 0xE9, ' ', 'J', 0xFA, 'n', 'i', 'o', 'r', '\n',
	}

	r, err := encoding.UTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café Júnior\n", string(got))
}

func TestUTF8Reader_StripsBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Café Júnior\n")...)

	r, err := encoding.UTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café Júnior\n", string(got))
}

func TestUTF8Reader_UTF16LE(t *testing.T) {
	input := []byte{0xFF, 0xFE}
	for _, r := range "Visa\n" {
		input = append(input, byte(r), 0x00)
	}

	r, err := encoding.UTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Visa\n", string(got))
}
