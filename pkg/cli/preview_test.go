package cli

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPreviewer(env map[string]string) (*Previewer, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Previewer{Out: &buf, Getenv: mapEnv(env)}, &buf
}

func TestPreviewInlineSequence(t *testing.T) {
	p, buf := testPreviewer(map[string]string{"TERM_PROGRAM": "WezTerm", "TERM": "xterm-256color"})
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})

	require.NoError(t, p.Show(img))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\x1b]1337;File=name=preview.png;inline=1;"), "got %q", out)

	// the payload sits between ':' and BEL and must be a PNG
	payload := out[strings.Index(out, ":")+1 : strings.Index(out, "\a")]
	dec, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), dec[:4])
}

func TestPreviewKittyChunks(t *testing.T) {
	p, buf := testPreviewer(map[string]string{"KITTY_WINDOW_ID": "1"})

	// noise does not compress, so the payload spans several chunks
	rng := rand.New(rand.NewSource(1))
	img := image.NewGray(image.Rect(0, 0, 120, 120))
	rng.Read(img.Pix)

	require.NoError(t, p.Show(img))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b_Ga=T,f=100,t=d,q=2,c=15,r=8,m=1;"), "got %.60q", out)
	assert.Greater(t, strings.Count(out, "\x1b_G"), 2)
	assert.Contains(t, out, "\x1b_Gm=0;")
	assert.Equal(t, 1, strings.Count(out, "a=T"))
}

func TestPreviewBackendOverride(t *testing.T) {
	p, buf := testPreviewer(map[string]string{"TERM_PROGRAM": "WezTerm", "PREVIEW_BACKEND": "kitty"})
	require.NoError(t, p.Show(image.NewGray(image.Rect(0, 0, 4, 4))))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b_G"))
}

func TestPreviewUnknownBackendFallsBack(t *testing.T) {
	p, buf := testPreviewer(map[string]string{"TERM_PROGRAM": "WezTerm", "PREVIEW_BACKEND": "sixel"})
	require.NoError(t, p.Show(image.NewGray(image.Rect(0, 0, 4, 4))))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b]1337;File="), "got %.40q", buf.String())
}

func TestPreviewDetection(t *testing.T) {
	p, _ := testPreviewer(map[string]string{"TERM": "xterm-ghostty"})
	assert.True(t, p.isKitty())
	assert.False(t, p.isInlineCapable())

	p, _ = testPreviewer(map[string]string{"ITERM_SESSION_ID": "w0t0p0"})
	assert.True(t, p.isInlineCapable())
	assert.False(t, p.isKitty())

	p, _ = testPreviewer(nil)
	if !hasChafa() {
		assert.False(t, p.Supported())
		assert.ErrorIs(t, p.Show(image.NewGray(image.Rect(0, 0, 1, 1))), errNoPreview)
	}
}

func TestPreviewNilImage(t *testing.T) {
	p, _ := testPreviewer(nil)
	assert.Error(t, p.Show(nil))
}

func TestComputePreviewSize(t *testing.T) {
	s := computePreviewSize(image.NewGray(image.Rect(0, 0, 600, 300)))
	assert.Equal(t, previewSize{Cols: 75, Rows: 19, PixelWidth: 600, PixelHeight: 304}, s)

	s = computePreviewSize(image.NewGray(image.Rect(0, 0, 4000, 100)))
	assert.Equal(t, 80, s.Cols)
	assert.Equal(t, 3, s.Rows)

	s = computePreviewSize(image.NewGray(image.Rect(0, 0, 2, 2)))
	assert.Equal(t, 6, s.Cols)
	assert.Equal(t, 3, s.Rows)
}
