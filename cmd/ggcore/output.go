package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/vdobler/ggcore"
	"github.com/vdobler/ggcore/aes"
	"github.com/vdobler/ggcore/record"
	"github.com/vdobler/ggcore/scale"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#243141"))
)

func hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "transparent"
	}
	return cf.Hex()
}

func num(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}

var columns = []string{
	"layer", "row", "group", "x", "y", "xmin", "xmax", "ymin", "ymax",
	"color", "fill", "size", "shape", "alpha", "label",
}

func cells(v record.Visual) []string {
	shape := ""
	if v.Shape >= 0 && v.Shape < scale.NumShapes {
		shape = scale.ShapeNames[v.Shape]
	}
	row := ""
	if v.Row >= 0 {
		row = strconv.Itoa(v.Row)
	}
	return []string{
		strconv.Itoa(v.Layer), row, v.Group.String(),
		num(v.X), num(v.Y), num(v.XMin), num(v.XMax), num(v.YMin), num(v.YMax),
		hex(v.Color), hex(v.Fill), num(v.Size), shape, num(v.Alpha), v.Label,
	}
}

// writeTables prints one table per panel followed by the breaks of the
// scales.
func writeTables(w io.Writer, b *ggcore.Built) error {
	for _, p := range b.Panels {
		title := fmt.Sprintf("Panel %d (row %d, col %d)", p.Index+1, p.Row+1, p.Col+1)
		if p.Label != "" {
			title += ": " + p.Label
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers(columns...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, vs := range p.Layers {
			for _, v := range vs {
				t.Row(cells(v)...)
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", titleStyle.Render(title), t.Render()); err != nil {
			return err
		}
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Scales") + "\n")
	for _, c := range aes.Channels() {
		sc, ok := b.Scales.Get(c)
		if !ok || c != axis(c) {
			continue
		}
		var labels []string
		for _, br := range sc.Breaks() {
			labels = append(labels, br.Label)
		}
		fmt.Fprintf(&sb, "  %-10s %-11s %s\n", c, sc.Type(), dimStyle.Render(strings.Join(labels, ", ")))
	}
	for _, le := range b.LayerErrors {
		fmt.Fprintf(&sb, "  dropped %s\n", le)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type jsonVisual struct {
	Layer  int       `json:"layer"`
	Row    int       `json:"row"`
	Group  string    `json:"group,omitempty"`
	X      *float64  `json:"x,omitempty"`
	Y      *float64  `json:"y,omitempty"`
	XEnd   *float64  `json:"xend,omitempty"`
	YEnd   *float64  `json:"yend,omitempty"`
	XMin   *float64  `json:"xmin,omitempty"`
	XMax   *float64  `json:"xmax,omitempty"`
	YMin   *float64  `json:"ymin,omitempty"`
	YMax   *float64  `json:"ymax,omitempty"`
	Color  string    `json:"color,omitempty"`
	Fill   string    `json:"fill,omitempty"`
	Size   *float64  `json:"size,omitempty"`
	Shape  int       `json:"shape"`
	Alpha  *float64  `json:"alpha,omitempty"`
	Dashes []float64 `json:"dashes,omitempty"`
	Width  *float64  `json:"linewidth,omitempty"`
	Label  string    `json:"label,omitempty"`
	Tip    string    `json:"tooltip,omitempty"`
}

type jsonPanel struct {
	Index  int            `json:"index"`
	Row    int            `json:"row"`
	Col    int            `json:"col"`
	Label  string         `json:"label,omitempty"`
	Layers [][]jsonVisual `json:"layers"`
}

type jsonScale struct {
	Channel string   `json:"channel"`
	Type    string   `json:"type"`
	Breaks  []string `json:"breaks"`
}

type jsonBuilt struct {
	Panels []jsonPanel `json:"panels"`
	Scales []jsonScale `json:"scales"`
	Errors []string    `json:"errors,omitempty"`
}

func opt(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func toJSON(v record.Visual) jsonVisual {
	jv := jsonVisual{
		Layer: v.Layer,
		Row:   v.Row,
		X:     opt(v.X),
		Y:     opt(v.Y),
		XEnd:  opt(v.XEnd),
		YEnd:  opt(v.YEnd),
		XMin:  opt(v.XMin),
		XMax:  opt(v.XMax),
		YMin:  opt(v.YMin),
		YMax:  opt(v.YMax),
		Color: hex(v.Color),
		Fill:  hex(v.Fill),
		Size:  opt(v.Size),
		Shape: v.Shape,
		Alpha: opt(v.Alpha),
		Width: opt(v.Linewidth),
		Label: v.Label,
		Tip:   v.Tooltip,
	}
	if !v.Group.IsNull() {
		jv.Group = v.Group.String()
	}
	for _, d := range v.Linetype {
		jv.Dashes = append(jv.Dashes, float64(d))
	}
	return jv
}

func writeJSON(w io.Writer, b *ggcore.Built) error {
	var out jsonBuilt
	for _, p := range b.Panels {
		jp := jsonPanel{Index: p.Index, Row: p.Row, Col: p.Col, Label: p.Label}
		for _, vs := range p.Layers {
			jvs := make([]jsonVisual, len(vs))
			for i, v := range vs {
				jvs[i] = toJSON(v)
			}
			jp.Layers = append(jp.Layers, jvs)
		}
		out.Panels = append(out.Panels, jp)
	}
	for _, c := range aes.Channels() {
		sc, ok := b.Scales.Get(c)
		if !ok || c != axis(c) {
			continue
		}
		js := jsonScale{Channel: c.String(), Type: sc.Type(), Breaks: []string{}}
		for _, br := range sc.Breaks() {
			js.Breaks = append(js.Breaks, br.Label)
		}
		out.Scales = append(out.Scales, js)
	}
	for _, le := range b.LayerErrors {
		out.Errors = append(out.Errors, le.Error())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
