package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/log"
)

var logger = log.New("loaders")

var (
	ErrMissingCounts       = errors.New("loaders: missing vertex/face count line")
	ErrMalformedVertex     = errors.New("loaders: malformed vertex line")
	ErrMalformedFace       = errors.New("loaders: malformed face line")
	ErrUnexpectedEOF       = errors.New("loaders: unexpected end of file")
	ErrFaceIndexOutOfRange = errors.New("loaders: face index out of range")
)

// OFFData contains the raw mesh data read from an OFF file
type OFFData struct {
	Vertices []core.Vec3
	Faces    [][3]int
}

// LoadOFF reads an OFF mesh file
func LoadOFF(filename string) (*OFFData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OFF file: %w", err)
	}
	defer file.Close()

	data, err := ReadOFF(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), len(data.Faces), time.Since(startTime))

	return data, nil
}

// ReadOFF parses OFF mesh data. The first line is ignored; the second holds the
// vertex and face counts (extra tokens are ignored); then come one line per vertex
// with three coordinates and one line per face with an arity token followed by
// three vertex indices. Blank lines and '#' comments after the header are skipped.
func ReadOFF(r io.Reader) (*OFFData, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	// Header line is ignored
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, ErrMissingCounts
	}

	counts, err := nextFields(scanner)
	if err != nil {
		return nil, err
	}
	if counts == nil || len(counts) < 2 {
		return nil, ErrMissingCounts
	}
	vertexCount, err := strconv.Atoi(counts[0])
	if err != nil || vertexCount < 0 {
		return nil, fmt.Errorf("%w: vertex count %q", ErrMissingCounts, counts[0])
	}
	faceCount, err := strconv.Atoi(counts[1])
	if err != nil || faceCount < 0 {
		return nil, fmt.Errorf("%w: face count %q", ErrMissingCounts, counts[1])
	}

	data := &OFFData{
		Vertices: make([]core.Vec3, 0, vertexCount),
		Faces:    make([][3]int, 0, faceCount),
	}

	for i := 0; i < vertexCount; i++ {
		fields, err := nextFields(scanner)
		if err != nil {
			return nil, err
		}
		if fields == nil {
			return nil, fmt.Errorf("%w: read %d of %d vertices", ErrUnexpectedEOF, i, vertexCount)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedVertex, i, strings.Join(fields, " "))
		}

		var coords [3]float64
		for axis := 0; axis < 3; axis++ {
			coords[axis], err = strconv.ParseFloat(fields[axis], 64)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrMalformedVertex, i, err)
			}
		}
		data.Vertices = append(data.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	for i := 0; i < faceCount; i++ {
		fields, err := nextFields(scanner)
		if err != nil {
			return nil, err
		}
		if fields == nil {
			return nil, fmt.Errorf("%w: read %d of %d faces", ErrUnexpectedEOF, i, faceCount)
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedFace, i, strings.Join(fields, " "))
		}

		// fields[0] is the face arity and is ignored
		var face [3]int
		for k := 0; k < 3; k++ {
			index, err := strconv.Atoi(fields[k+1])
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrMalformedFace, i, err)
			}
			if index < 0 || index >= vertexCount {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrFaceIndexOutOfRange, i, index, vertexCount)
			}
			face[k] = index
		}
		data.Faces = append(data.Faces, face)
	}

	return data, nil
}

// nextFields returns the whitespace separated tokens of the next non-blank,
// non-comment line, or nil at end of input.
func nextFields(scanner *bufio.Scanner) ([]string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	return nil, scanner.Err()
}

// Transform repositions mesh vertices: each vertex v becomes (v + Translate) * Scale.
// A zero Scale is treated as 1.
type Transform struct {
	Translate core.Vec3 `json:"translate"`
	Scale     float64   `json:"scale"`
}

// Apply returns transformed copies of the vertices
func (t Transform) Apply(vertices []core.Vec3) []core.Vec3 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}

	transformed := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		transformed[i] = v.Add(t.Translate).Multiply(scale)
	}
	return transformed
}
