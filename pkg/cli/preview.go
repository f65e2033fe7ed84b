package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal preview of rendered graphs.
//
// Backends, in the order they are tried:
//   - inline: the iTerm2 OSC 1337 sequence (iTerm2, WezTerm, VSCode and others)
//   - kitty: the kitty graphics protocol, base64 chunked inside ESC _G ... ESC \
//   - chafa: an external renderer for terminals without image support
//
// PREVIEW_BACKEND forces one backend first.

var errNoPreview = errors.New("no preview protocol matched")

// Previewer writes images to a terminal.
type Previewer struct {
	Out   io.Writer
	Debug bool
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// NewPreviewer returns a previewer writing to out.
func NewPreviewer(out io.Writer, cfg Config) *Previewer {
	return &Previewer{Out: out, Debug: cfg.PreviewDebug}
}

func (p *Previewer) getenv(k string) string {
	if p.Getenv != nil {
		return p.Getenv(k)
	}
	return os.Getenv(k)
}

func (p *Previewer) debugf(format string, args ...any) {
	if p.Debug {
		fmt.Fprintf(os.Stderr, "rscope-preview: "+format+"\n", args...)
	}
}

func (p *Previewer) isKitty() bool {
	if p.getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty protocol
	term := strings.ToLower(p.getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func (p *Previewer) isInlineCapable() bool {
	switch p.getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return true
	}
	term := strings.ToLower(p.getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "tabby") || strings.Contains(term, "vscode") {
		return true
	}
	return p.getenv("ITERM_SESSION_ID") != ""
}

func hasChafa() bool {
	_, err := exec.LookPath("chafa")
	return err == nil
}

// Supported reports whether some backend is likely to work.
func (p *Previewer) Supported() bool {
	ok := p.isKitty() || p.isInlineCapable() || hasChafa()
	p.debugf("supported=%v kitty=%v inline=%v", ok, p.isKitty(), p.isInlineCapable())
	return ok
}

// previewSize is the placement of a preview in terminal cells.
type previewSize struct {
	Cols, Rows              int
	PixelWidth, PixelHeight int
}

// computePreviewSize fits img into at most 80x40 cells of 8x16 pixels,
// keeping the aspect ratio and never scaling up.
func computePreviewSize(img image.Image) previewSize {
	const (
		charW   = 8
		charH   = 16
		minCols = 6
		minRows = 3
		maxCols = 80
		maxRows = 40
	)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return previewSize{Cols: minCols, Rows: minRows, PixelWidth: minCols * charW, PixelHeight: minRows * charH}
	}

	scale := math.Min(1, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)

	return previewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// Show encodes img as PNG and sends it to the terminal.
func (p *Previewer) Show(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	size := computePreviewSize(img)
	blob := buf.Bytes()

	backends := map[string]func([]byte, previewSize) error{
		"kitty":  p.sendKitty,
		"inline": p.sendInline,
		"chafa":  p.sendChafa,
	}
	if v := strings.ToLower(p.getenv("PREVIEW_BACKEND")); v != "" {
		send, ok := backends[v]
		if !ok {
			p.debugf("unknown PREVIEW_BACKEND value: %s", v)
		} else if err := send(blob, size); err != nil {
			p.debugf("override %s failed: %v", v, err)
		} else {
			return nil
		}
	}

	switch {
	case p.isInlineCapable():
		return p.sendInline(blob, size)
	case p.isKitty():
		return p.sendKitty(blob, size)
	case hasChafa():
		return p.sendChafa(blob, size)
	}
	return errNoPreview
}

// sendKitty transmits a PNG with the kitty graphics protocol in chunks of
// at most 4096 base64 bytes. Only the first chunk carries the control keys.
func (p *Previewer) sendKitty(data []byte, size previewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	var b strings.Builder
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		if pos == 0 {
			// a=T transmit and display, f=100 PNG, q=2 no replies
			fmt.Fprintf(&b, "\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;", size.Cols, size.Rows, more)
		} else {
			fmt.Fprintf(&b, "\x1b_Gm=%s;", more)
		}
		b.WriteString(enc[pos:end])
		b.WriteString("\x1b\\")
	}
	b.WriteString("\n")
	p.debugf("kitty: %d bytes, %dx%d cells", len(data), size.Cols, size.Rows)
	_, err := io.WriteString(p.Out, b.String())
	return err
}

// sendInline emits the iTerm2 inline image sequence.
func (p *Previewer) sendInline(data []byte, size previewSize) error {
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx;", len(data), size.PixelWidth, size.PixelHeight)
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" +
		base64.StdEncoding.EncodeToString(data) + "\a\n"
	p.debugf("inline: %d bytes", len(data))
	_, err := io.WriteString(p.Out, seq)
	return err
}

// sendChafa pipes the PNG through the chafa binary.
func (p *Previewer) sendChafa(data []byte, size previewSize) error {
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.Out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	return nil
}
