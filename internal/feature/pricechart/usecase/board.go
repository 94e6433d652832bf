package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
	"portfolio_chart/internal/feature/pricechart/domain/paint"
)

const (
	// MaxDimension bounds requested canvas sizes in CSS pixels.
	MaxDimension = 4096.0
	// MaxPixelRatio bounds requested device pixel ratios.
	MaxPixelRatio = 4.0
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Display is the host page as seen by the board: element lookup plus the
// controls a remote client drives.
type Display interface {
	Host
	// Resize sets the element box and notifies resize listeners.
	Resize(id string, width, height, ratio float64) bool
	PointerMove(id string, x float64) bool
	PointerLeave(id string) bool
	Frame(id string) (paint.Frame, bool)
}

// FrameKey identifies an encoded frame. Drawing is idempotent, so equal keys
// always describe identical images.
type FrameKey struct {
	Chart  string
	Token  string // changes whenever the chart's series is regenerated
	Format Format
	Width  float64 // CSS pixels
	Height float64 // CSS pixels
	Scale  float64
	Hover  int // -1 when nothing is hovered
}

// String renders the key as colon-separated fields.
func (k FrameKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d",
		k.Chart, k.Token, k.Format, num(k.Width), num(k.Height), num(k.Scale), k.Hover)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FrameEncoder turns a recorded frame into image bytes.
type FrameEncoder interface {
	Encode(ctx context.Context, key FrameKey, frame paint.Frame) ([]byte, error)
	ContentType() string
}

// Invalidator is implemented by encoders that keep frames between calls.
type Invalidator interface {
	Invalidate(ctx context.Context, chart string) error
}

// RenderRequest describes the viewport a client wants a frame for.
// Zero sizes or ratio keep the current value.
type RenderRequest struct {
	Width      float64
	Height     float64
	PixelRatio float64
	Format     Format
}

// PointerRequest is a pointer position together with the viewport the client
// measured it in. Zero sizes or ratio keep the current value.
type PointerRequest struct {
	X          float64 // CSS pixels from the element's left edge
	Width      float64
	Height     float64
	PixelRatio float64
}

// Image is an encoded frame.
type Image struct {
	ContentType string
	Body        []byte
}

type mountedChart struct {
	chart *PriceChart
	token string
}

// Board owns the charts of one display. All chart work happens under a
// single lock, matching the single-threaded event model of a page.
type Board struct {
	mu       sync.Mutex
	display  Display
	source   SeriesSource
	opts     Options
	encoders map[Format]FrameEncoder
	ids      []string
	charts   map[string]*mountedChart
}

// NewBoard returns an empty board.
func NewBoard(display Display, source SeriesSource, opts Options, encoders map[Format]FrameEncoder) *Board {
	return &Board{
		display:  display,
		source:   source,
		opts:     opts,
		encoders: encoders,
		charts:   make(map[string]*mountedChart),
	}
}

// Mount creates a chart for each canvas id. Ids with no element are skipped.
func (b *Board) Mount(ids ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		if err := b.mountLocked(id); err != nil {
			return err
		}
		if !slices.Contains(b.ids, id) {
			b.ids = append(b.ids, id)
		}
	}
	return nil
}

func (b *Board) mountLocked(id string) error {
	if old, ok := b.charts[id]; ok {
		old.chart.Close()
		delete(b.charts, id)
	}
	chart, err := NewPriceChart(b.display, id, b.source, b.opts)
	if err != nil {
		return err
	}
	if !chart.Active() {
		slog.Warn("canvas not found, chart disabled", "canvas", id)
		return nil
	}
	b.charts[id] = &mountedChart{chart: chart, token: uuid.NewString()}
	slog.Info("chart mounted", "canvas", id, "points", len(chart.series))
	return nil
}

// Rebuild replaces every chart with a freshly generated one so the date
// axis ends today. Cached frames of the old charts are dropped.
func (b *Board) Rebuild(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, m := range b.charts {
		m.chart.Close()
		delete(b.charts, id)
		for _, enc := range b.encoders {
			if inv, ok := enc.(Invalidator); ok {
				if err := inv.Invalidate(ctx, id); err != nil {
					slog.Warn("frame cache invalidation failed", "canvas", id, "error", err)
				}
			}
		}
	}
	for _, id := range b.ids {
		if err := b.mountLocked(id); err != nil {
			return err
		}
	}
	return nil
}

// Close detaches every chart.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, m := range b.charts {
		m.chart.Close()
		delete(b.charts, id)
	}
}

// IDs returns the mounted canvas ids.
func (b *Board) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.charts))
	for _, id := range b.ids {
		if _, ok := b.charts[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Render resizes the chart's element if the request asks for a different
// viewport and encodes the resulting frame.
func (b *Board) Render(ctx context.Context, id string, req RenderRequest) (Image, error) {
	enc, ok := b.encoders[req.Format]
	if !ok {
		return Image{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	key, frame, err := b.snapshot(id, req)
	if err != nil {
		return Image{}, err
	}

	body, err := enc.Encode(ctx, key, frame)
	if err != nil {
		return Image{}, fmt.Errorf("encode %s frame: %w", req.Format, err)
	}
	return Image{ContentType: enc.ContentType(), Body: body}, nil
}

func (b *Board) snapshot(id string, req RenderRequest) (FrameKey, paint.Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.charts[id]
	if !ok {
		return FrameKey{}, paint.Frame{}, ErrChartNotFound
	}
	if err := b.fitLocked(id, req.Width, req.Height, req.PixelRatio); err != nil {
		return FrameKey{}, paint.Frame{}, err
	}

	frame, _ := b.display.Frame(id)
	hover := -1
	if hv := m.chart.Hover(); hv.Active {
		hover = hv.Index
	}
	key := FrameKey{
		Chart:  id,
		Token:  m.token,
		Format: req.Format,
		Width:  frame.ClientWidth,
		Height: frame.ClientHeight,
		Scale:  frame.Scale,
		Hover:  hover,
	}
	return key, frame, nil
}

// fitLocked resizes the chart's element to the requested viewport. Zero
// values keep the current size or ratio.
func (b *Board) fitLocked(id string, width, height, ratio float64) error {
	surface, ok := b.display.Lookup(id)
	if !ok {
		return ErrChartNotFound
	}

	cw, ch := surface.ClientSize()
	cr := surface.PixelRatio()
	w, h, r := cw, ch, cr
	if width != 0 {
		w = width
	}
	if height != 0 {
		h = height
	}
	if ratio != 0 {
		r = ratio
	}
	if err := validateViewport(w, h, r); err != nil {
		return err
	}

	if w != cw || h != ch || r != cr {
		b.display.Resize(id, w, h, r)
	}
	return nil
}

func validateViewport(w, h, ratio float64) error {
	if !(w > 0 && w <= MaxDimension) || !(h > 0 && h <= MaxDimension) {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidViewport, w, h)
	}
	if !(ratio > 0 && ratio <= MaxPixelRatio) {
		return fmt.Errorf("%w: pixel ratio %g", ErrInvalidViewport, ratio)
	}
	return nil
}

// PointerMove sizes the chart's element to the client's viewport, then
// forwards the move, so x resolves against the layout that client sees.
func (b *Board) PointerMove(id string, req PointerRequest) (entity.Readout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.charts[id]
	if !ok {
		return entity.Readout{}, ErrChartNotFound
	}
	if err := b.fitLocked(id, req.Width, req.Height, req.PixelRatio); err != nil {
		return entity.Readout{}, err
	}
	b.display.PointerMove(id, req.X)
	ro, _ := m.chart.Readout()
	return ro, nil
}

// PointerLeave forwards a pointer leave to the chart's element.
func (b *Board) PointerLeave(id string) (entity.Readout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.charts[id]
	if !ok {
		return entity.Readout{}, ErrChartNotFound
	}
	b.display.PointerLeave(id)
	ro, _ := m.chart.Readout()
	return ro, nil
}

// Readout returns what the chart's price label currently shows.
func (b *Board) Readout(id string) (entity.Readout, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.charts[id]
	if !ok {
		return entity.Readout{}, ErrChartNotFound
	}
	ro, _ := m.chart.Readout()
	return ro, nil
}

// Series returns a copy of the chart's price series.
func (b *Board) Series(id string) ([]entity.DataPoint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.charts[id]
	if !ok {
		return nil, ErrChartNotFound
	}
	return m.chart.Series(), nil
}
