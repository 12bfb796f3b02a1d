package zarr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCodec(t *testing.T) {
	cases := map[string]Codec{
		"":     CodecNone,
		"none": CodecNone,
		"gzip": CodecGzip,
		"gz":   CodecGzip,
		"zstd": CodecZstd,
		"zst":  CodecZstd,
	}
	for in, want := range cases {
		got, err := ParseCodec(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCodec("blosc")
	assert.EqualError(t, err, `unsupported codec "blosc"`)

	var m *CompressionMeta
	c, err := m.Codec()
	require.NoError(t, err)
	assert.Equal(t, CodecNone, c)
}

func TestCodecRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("hyperslab "), 100)
	for _, c := range []Codec{CodecNone, CodecGzip, CodecZstd} {
		t.Run(c.String(), func(t *testing.T) {
			enc, err := c.Encode(data)
			require.NoError(t, err)
			if c != CodecNone {
				assert.Less(t, len(enc), len(data))
			}
			dec, err := c.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, data, dec)
		})
	}
}
