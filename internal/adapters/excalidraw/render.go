package excalidraw

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

const (
	canvasPadding  = 16.0
	minCanvasSide  = 64
	defaultStroke  = "#1e1e1e"
	defaultFont    = 20.0
	textLineHeight = 1.25
)

// Rasterize renders scene elements to a PNG. It is deliberately approximate:
// shapes, connectors, freedraw strokes, text and embedded images are drawn;
// fills respect the element's background color; "transparent" means no fill.
func Rasterize(elements []Element, files map[string]EmbeddedFile) ([]byte, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("drawing has no elements")
	}

	minX, minY, maxX, maxY := sceneBounds(elements)
	width := int(math.Ceil(maxX-minX)) + 2*int(canvasPadding)
	height := int(math.Ceil(maxY-minY)) + 2*int(canvasPadding)
	if width < minCanvasSide {
		width = minCanvasSide
	}
	if height < minCanvasSide {
		height = minCanvasSide
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Translate(canvasPadding-minX, canvasPadding-minY)

	for _, el := range elements {
		drawElement(dc, el, files)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func sceneBounds(elements []Element) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, el := range elements {
		x0, y0, x1, y1 := elementBounds(el)
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	return
}

func elementBounds(el Element) (x0, y0, x1, y1 float64) {
	x0, y0 = el.X, el.Y
	x1, y1 = el.X+el.Width, el.Y+el.Height
	for _, p := range el.Points {
		if len(p) < 2 {
			continue
		}
		x0 = math.Min(x0, el.X+p[0])
		y0 = math.Min(y0, el.Y+p[1])
		x1 = math.Max(x1, el.X+p[0])
		y1 = math.Max(y1, el.Y+p[1])
	}
	return
}

func drawElement(dc *gg.Context, el Element, files map[string]EmbeddedFile) {
	dc.Push()
	defer dc.Pop()

	if el.Angle != 0 {
		cx := el.X + el.Width/2
		cy := el.Y + el.Height/2
		dc.RotateAbout(el.Angle, cx, cy)
	}

	switch el.Type {
	case "rectangle":
		dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
		fillAndStroke(dc, el)
	case "ellipse":
		dc.DrawEllipse(el.X+el.Width/2, el.Y+el.Height/2, el.Width/2, el.Height/2)
		fillAndStroke(dc, el)
	case "diamond":
		dc.MoveTo(el.X+el.Width/2, el.Y)
		dc.LineTo(el.X+el.Width, el.Y+el.Height/2)
		dc.LineTo(el.X+el.Width/2, el.Y+el.Height)
		dc.LineTo(el.X, el.Y+el.Height/2)
		dc.ClosePath()
		fillAndStroke(dc, el)
	case "line", "arrow", "freedraw", "draw":
		drawPolyline(dc, el)
	case "text":
		drawText(dc, el)
	case "image":
		drawImage(dc, el, files)
	default:
		// Unknown element types contribute their bounding box outline so the
		// drawing stays recognizable.
		if el.Width > 0 && el.Height > 0 {
			dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
			applyStroke(dc, el)
			dc.Stroke()
		}
	}
}

func fillAndStroke(dc *gg.Context, el Element) {
	if el.BackgroundColor != "" && el.BackgroundColor != "transparent" {
		dc.SetHexColor(el.BackgroundColor)
		dc.FillPreserve()
	}
	applyStroke(dc, el)
	dc.Stroke()
}

func applyStroke(dc *gg.Context, el Element) {
	color := el.StrokeColor
	if color == "" || color == "transparent" {
		color = defaultStroke
	}
	dc.SetHexColor(color)
	if el.StrokeWidth > 0 {
		dc.SetLineWidth(el.StrokeWidth)
	} else {
		dc.SetLineWidth(1)
	}
}

func drawPolyline(dc *gg.Context, el Element) {
	// Scene JSON may carry point entries with fewer than two coordinates;
	// only complete pairs are drawable.
	points := el.Points[:0:0]
	for _, p := range el.Points {
		if len(p) >= 2 {
			points = append(points, p)
		}
	}
	if len(points) < 2 {
		return
	}
	dc.MoveTo(el.X+points[0][0], el.Y+points[0][1])
	for _, p := range points[1:] {
		dc.LineTo(el.X+p[0], el.Y+p[1])
	}
	applyStroke(dc, el)
	dc.Stroke()

	if el.Type == "arrow" {
		drawArrowHead(dc, el, points)
	}
}

// drawArrowHead adds two short strokes at the final point of an arrow.
// points has at least two complete pairs, guaranteed by drawPolyline.
func drawArrowHead(dc *gg.Context, el Element, points [][]float64) {
	n := len(points)
	last := points[n-1]
	prev := points[n-2]
	angle := math.Atan2(last[1]-prev[1], last[0]-prev[0])

	tipX := el.X + last[0]
	tipY := el.Y + last[1]
	const headLen = 10.0
	for _, spread := range []float64{math.Pi - 0.4, math.Pi + 0.4} {
		dc.MoveTo(tipX, tipY)
		dc.LineTo(tipX+headLen*math.Cos(angle+spread), tipY+headLen*math.Sin(angle+spread))
	}
	applyStroke(dc, el)
	dc.Stroke()
}

func drawText(dc *gg.Context, el Element) {
	color := el.StrokeColor
	if color == "" {
		color = defaultStroke
	}
	dc.SetHexColor(color)

	size := el.FontSize
	if size <= 0 {
		size = defaultFont
	}
	for i, line := range strings.Split(el.Text, "\n") {
		dc.DrawString(line, el.X, el.Y+size*textLineHeight*float64(i)+size)
	}
}

func drawImage(dc *gg.Context, el Element, files map[string]EmbeddedFile) {
	file, ok := files[el.FileID]
	if !ok {
		return
	}
	img, err := decodeDataURL(file.DataURL)
	if err != nil {
		return
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || el.Width <= 0 || el.Height <= 0 {
		return
	}

	dc.Push()
	dc.Translate(el.X, el.Y)
	dc.Scale(el.Width/float64(bounds.Dx()), el.Height/float64(bounds.Dy()))
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

func decodeDataURL(dataURL string) (image.Image, error) {
	i := strings.Index(dataURL, ",")
	if i < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[i+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
