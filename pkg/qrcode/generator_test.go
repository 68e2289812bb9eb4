package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/qrcode"
)

const provisioningURI = "otpauth://totp/OpenEOS:user@example.com?algorithm=SHA1&digits=6&issuer=OpenEOS&period=30&secret=JBSWY3DPEHPK3PXP"

func TestPNG(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{"", "   \t\n"} {
			out, err := qrcode.PNG(content, 256)
			require.ErrorIs(t, err, qrcode.ErrEmptyContent)
			assert.Nil(t, out)
		}
	})

	t.Run("renders decodable png", func(t *testing.T) {
		t.Parallel()
		out, err := qrcode.PNG(provisioningURI, 128)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
		assert.Equal(t, 128, img.Bounds().Dy())
	})

	t.Run("defaults size", func(t *testing.T) {
		t.Parallel()
		out, err := qrcode.PNG(provisioningURI, 0)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})
}

func TestDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.DataURI(provisioningURI, 0)
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)

	_, err = qrcode.DataURI("", 0)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}
