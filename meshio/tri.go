package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/raytracer/geom"
)

// ParseErrorKind classifies a tri-format parse failure.
type ParseErrorKind int

const (
	// ErrExpectedFloat means a token that should have parsed as a
	// float32 did not.
	ErrExpectedFloat ParseErrorKind = iota
	// ErrEndOfFile means the input ended mid-triangle (fewer than the
	// nine floats a triangle requires).
	ErrEndOfFile
)

// ParseError is a tri-format decode failure, carrying the 1-based input
// line at which it occurred. It is a distinct type rather than a
// sentinel error, since callers commonly want the location.
type ParseError struct {
	Line    int
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("meshio: tri parse error at line %d: %s", e.Line, e.Message)
}

// LoadTri parses an ASCII "tri" file from disk: whitespace-separated
// floats, nine per triangle (three vertices of three coordinates each),
// any number of triangles, blank lines ignored.
func LoadTri(path string) (*geom.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open tri %q: %w", path, err)
	}
	defer f.Close()
	return DecodeTri(f)
}

// DecodeTri parses tri-format data from r.
func DecodeTri(r io.Reader) (*geom.Mesh, error) {
	toks := newTriTokenizer(r)
	builder := geom.NewMeshBuilder()
	emptyUV := [3]mgl32.Vec2{}
	emptyNormal := [3]mgl32.Vec3{}

	for {
		more, err := toks.skipBlankLines()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}

		v0, err := toks.readVertex()
		if err != nil {
			return nil, err
		}
		v1, err := toks.readVertex()
		if err != nil {
			return nil, err
		}
		v2, err := toks.readVertex()
		if err != nil {
			return nil, err
		}

		builder.AddTriangle(geom.Triangle{V0: v0, V1: v1, V2: v2}, emptyUV, emptyNormal)
	}

	return builder.Build()
}

// triTokenizer walks a tri-format document one whitespace-delimited
// token at a time, tracking the 1-based line number the way the
// original's line-counting lexer does.
type triTokenizer struct {
	scanner *bufio.Scanner
	tokens  []string
	lineNo  int
	atEOF   bool
}

func newTriTokenizer(r io.Reader) *triTokenizer {
	return &triTokenizer{scanner: bufio.NewScanner(r), lineNo: 0}
}

// fillLine advances to the next non-empty source line and splits it
// into tokens, returning false once the input is exhausted.
func (t *triTokenizer) fillLine() bool {
	for len(t.tokens) == 0 {
		if !t.scanner.Scan() {
			t.atEOF = true
			return false
		}
		t.lineNo++
		t.tokens = strings.Fields(t.scanner.Text())
	}
	return true
}

// skipBlankLines reports whether further triangle data remains.
func (t *triTokenizer) skipBlankLines() (bool, error) {
	if len(t.tokens) > 0 {
		return true, nil
	}
	if t.atEOF {
		return false, nil
	}
	return t.fillLine(), nil
}

func (t *triTokenizer) next() (string, error) {
	if len(t.tokens) == 0 {
		if !t.fillLine() {
			return "", &ParseError{
				Line:    t.lineNo,
				Kind:    ErrEndOfFile,
				Message: "reached the end of the input in the process of getting the next token",
			}
		}
	}
	tok := t.tokens[0]
	t.tokens = t.tokens[1:]
	return tok, nil
}

func (t *triTokenizer) readFloat() (float32, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, &ParseError{
			Line:    t.lineNo,
			Kind:    ErrExpectedFloat,
			Message: fmt.Sprintf("expected a floating point number but got %q instead", tok),
		}
	}
	return float32(val), nil
}

func (t *triTokenizer) readVertex() (mgl32.Vec3, error) {
	x, err := t.readFloat()
	if err != nil {
		return mgl32.Vec3{}, err
	}
	y, err := t.readFloat()
	if err != nil {
		return mgl32.Vec3{}, err
	}
	z, err := t.readFloat()
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{x, y, z}, nil
}
