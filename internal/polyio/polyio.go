// Package polyio reads polygons for the chaos game from text and svg input.
package polyio

import (
	"bufio"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/chaosgame/chaos"
	"github.com/osuushi/chaosgame/projective"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

var ErrSyntax = errors.New("syntax error")

// ReadVertices reads one vertex per line. A vertex is either whitespace
// separated coordinates, "1 0.5 1", or the projective notation "(1:0.5:1)".
// An optional colour may follow the coordinates, see ParseColor. Blank lines
// and lines starting with # are skipped.
func ReadVertices(r io.Reader) ([]chaos.Vertex, error) {
	var vertices []chaos.Vertex
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := parseVertex(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		vertices = append(vertices, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading vertices")
	}
	return vertices, nil
}

func parseVertex(line string) (chaos.Vertex, error) {
	var coords, rest string
	if strings.HasPrefix(line, "(") {
		end := strings.Index(line, ")")
		if end < 0 {
			return chaos.Vertex{}, errors.Wrapf(ErrSyntax, "unclosed parenthesis in %q", line)
		}
		coords = strings.ReplaceAll(line[1:end], ":", " ")
		rest = strings.TrimSpace(line[end+1:])
	} else {
		fields := strings.Fields(line)
		// A trailing field that is not a number is the colour.
		if _, err := strconv.ParseFloat(fields[len(fields)-1], 64); err != nil && len(fields) > 1 {
			rest = fields[len(fields)-1]
			fields = fields[:len(fields)-1]
		}
		coords = strings.Join(fields, " ")
	}

	var values []float64
	for _, field := range strings.Fields(coords) {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return chaos.Vertex{}, errors.Wrapf(ErrSyntax, "bad coordinate %q", field)
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return chaos.Vertex{}, errors.Wrapf(ErrSyntax, "no coordinates in %q", line)
	}

	v := chaos.Vertex{Point: projective.NewPoint(values...)}
	if rest != "" {
		c, err := ParseColor(rest)
		if err != nil {
			return chaos.Vertex{}, err
		}
		v.Color = c
	}
	return v, nil
}

// ParseColor accepts #RRGGBB, #RGB or an SVG colour name.
func ParseColor(s string) (color.RGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return color.RGBA{}, errors.Wrapf(ErrSyntax, "unknown colour %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, errors.Wrapf(ErrSyntax, "bad colour %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(ErrSyntax, "bad colour %q", s)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// ReadSVG takes the first polygon of an svg document and lifts its points to
// homogeneous coordinates with z = 1. A fill attribute, when it is a plain
// colour, colours every vertex.
func ReadSVG(r io.Reader) ([]chaos.Vertex, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	polygons := root.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, errors.Wrap(ErrSyntax, "no polygon in svg")
	}
	polygon := polygons[0]

	var fill color.RGBA
	if attr, ok := polygon.Attributes["fill"]; ok {
		// "none" and paint servers leave the vertices uncoloured
		fill, _ = ParseColor(attr)
	}

	// Points are separated by whitespace and/or commas, "x,y x,y" or "x y x y".
	fields := strings.FieldsFunc(polygon.Attributes["points"], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Wrapf(ErrSyntax, "odd number of coordinates in points %q", polygon.Attributes["points"])
	}

	vertices := make([]chaos.Vertex, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "bad x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "bad y value %q", fields[i+1])
		}
		vertices = append(vertices, chaos.Vertex{Point: projective.NewPoint(x, y, 1), Color: fill})
	}
	return vertices, nil
}
