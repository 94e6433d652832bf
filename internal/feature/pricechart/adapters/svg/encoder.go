// Package svg writes recorded chart frames as SVG documents.
package svg

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"portfolio_chart/internal/feature/pricechart/domain/paint"
	"portfolio_chart/internal/feature/pricechart/usecase"
)

// Encoder implements usecase.FrameEncoder for SVG output. The document is
// sized in CSS pixels, so the frame's pixel ratio does not apply.
type Encoder struct{}

// NewEncoder returns an SVG encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) ContentType() string { return "image/svg+xml" }

// Encode writes frame as a standalone SVG document.
func (e *Encoder) Encode(ctx context.Context, _ usecase.FrameKey, frame paint.Frame) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := num(frame.ClientWidth), num(frame.ClientHeight)
	var body, defs bytes.Buffer
	gradients := 0
	for _, op := range frame.Ops {
		switch op.Kind {
		case paint.OpFillPath:
			fill := fillAttrs(op.Fill.Color)
			if op.Fill.Gradient != nil {
				gradients++
				id := "fill" + strconv.Itoa(gradients)
				writeGradient(&defs, id, *op.Fill.Gradient)
				fill = fmt.Sprintf(`fill="url(#%s)"`, id)
			}
			fmt.Fprintf(&body, `<path d="%s" %s/>`+"\n", pathData(op.Path), fill)
		case paint.OpStrokePath:
			fmt.Fprintf(&body, `<path d="%s" fill="none" %s/>`+"\n", pathData(op.Path), strokeAttrs(op.Stroke))
		case paint.OpText:
			if err := writeText(&body, op.Text); err != nil {
				return nil, err
			}
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", w, h, w, h)
	if defs.Len() > 0 {
		out.WriteString("<defs>\n")
		out.Write(defs.Bytes())
		out.WriteString("</defs>\n")
	}
	out.Write(body.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// coord rounds to 1/1000 px so curve control points stay compact.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func pathData(p *paint.Path) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	pair := func(x, y float64) {
		sb.WriteString(coord(x))
		sb.WriteByte(' ')
		sb.WriteString(coord(y))
	}
	for i, sg := range p.Segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch sg.Kind {
		case paint.MoveTo:
			sb.WriteString("M")
			pair(sg.Pts[0], sg.Pts[1])
		case paint.LineTo:
			sb.WriteString("L")
			pair(sg.Pts[0], sg.Pts[1])
		case paint.CubicTo:
			sb.WriteString("C")
			pair(sg.Pts[0], sg.Pts[1])
			sb.WriteByte(' ')
			pair(sg.Pts[2], sg.Pts[3])
			sb.WriteByte(' ')
			pair(sg.Pts[4], sg.Pts[5])
		case paint.Circle:
			// two half arcs
			cx, cy, r := sg.Pts[0], sg.Pts[1], sg.Radius
			sb.WriteString("M")
			pair(cx-r, cy)
			fmt.Fprintf(&sb, " A%s %s 0 1 0 %s %s", coord(r), coord(r), coord(cx+r), coord(cy))
			fmt.Fprintf(&sb, " A%s %s 0 1 0 %s %s Z", coord(r), coord(r), coord(cx-r), coord(cy))
		case paint.ClosePath:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

// hexColor returns the colour as #rrggbb plus its opacity in [0, 1].
func hexColor(c paint.Color) (string, string) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}

func fillAttrs(c paint.Color) string {
	hex, op := hexColor(c)
	if c.A == 255 {
		return fmt.Sprintf(`fill="%s"`, hex)
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, hex, op)
}

func strokeAttrs(s paint.Stroke) string {
	hex, op := hexColor(s.Color)
	attrs := []string{fmt.Sprintf(`stroke="%s"`, hex), fmt.Sprintf(`stroke-width="%s"`, num(s.Width))}
	if s.Color.A != 255 {
		attrs = append(attrs, fmt.Sprintf(`stroke-opacity="%s"`, op))
	}
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = num(d)
		}
		attrs = append(attrs, fmt.Sprintf(`stroke-dasharray="%s"`, strings.Join(parts, ",")))
	}
	if s.Round {
		attrs = append(attrs, `stroke-linecap="round"`, `stroke-linejoin="round"`)
	}
	return strings.Join(attrs, " ")
}

func writeGradient(buf *bytes.Buffer, id string, g paint.LinearGradient) {
	fmt.Fprintf(buf, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="0" y1="%s" x2="0" y2="%s">`+"\n",
		id, coord(g.Y0), coord(g.Y1))
	for _, s := range g.Stops {
		hex, op := hexColor(s.Color)
		fmt.Fprintf(buf, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n", num(s.Offset), hex, op)
	}
	buf.WriteString("</linearGradient>\n")
}

var anchors = map[paint.Align]string{
	paint.AlignLeft:   "start",
	paint.AlignCenter: "middle",
	paint.AlignRight:  "end",
}

func writeText(buf *bytes.Buffer, t paint.Text) error {
	var family, body bytes.Buffer
	if err := xml.EscapeText(&family, []byte(t.Font.Family)); err != nil {
		return fmt.Errorf("escape font family: %w", err)
	}
	if err := xml.EscapeText(&body, []byte(t.Body)); err != nil {
		return fmt.Errorf("escape text: %w", err)
	}
	hex, op := hexColor(t.Color)
	fmt.Fprintf(buf, `<text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%d" fill="%s"`,
		coord(t.X), coord(t.Y), family.String(), num(t.Font.Size), t.Font.Weight, hex)
	if t.Color.A != 255 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, op)
	}
	fmt.Fprintf(buf, ` text-anchor="%s">%s</text>`+"\n", anchors[t.Align], body.String())
	return nil
}
