package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ohmycook/internal/pkg/common"
)

func sampleImage() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, 4, 3), color.Palette{color.Black, color.White})
	img.Set(1, 1, color.White)
	return img
}

func encodePNG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sampleImage()))
	return buf.Bytes()
}

func encodeGIF(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, sampleImage(), nil))
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	s := NewService(1 << 20)

	u, err := s.Validate(encodePNG(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", u.MIMEType)
	assert.Equal(t, 4, u.Width)
	assert.Equal(t, 3, u.Height)

	_, err = s.Validate([]byte("not an image"))
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)

	_, err = s.Validate(nil)
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)

	_, err = NewService(10).Validate(encodePNG(t))
	assert.ErrorIs(t, err, common.ErrInvalidImageSize)
}

func TestDecodeDataURI(t *testing.T) {
	s := NewService(1 << 20)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t))

	u, err := s.DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "png", u.Format)

	_, err = s.DecodeDataURI("https://example.com/receipt.png")
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)
	_, err = s.DecodeDataURI("data:image/png;base64,@@@")
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)
}

func TestNormalizeConvertsGIF(t *testing.T) {
	s := NewService(1 << 20)
	u, err := s.Validate(encodeGIF(t))
	require.NoError(t, err)
	assert.Equal(t, "gif", u.Format)

	out, err := s.Normalize(u)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", out.MIMEType)

	again, err := s.Validate(out.Data)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", again.Format)

	pngUpload, err := s.Validate(encodePNG(t))
	require.NoError(t, err)
	same, err := s.Normalize(pngUpload)
	require.NoError(t, err)
	assert.Same(t, pngUpload, same)
}
