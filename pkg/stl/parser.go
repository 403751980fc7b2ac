package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	headerSize   = 80
	facetSize    = 50 // normal, three vertices, attribute byte count
	binaryPrefix = headerSize + 4
)

// Parse reads an STL file and returns the welded triangle mesh.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*mesh.TriangleMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return m, nil
}

// Decode reads STL data from r
func Decode(r io.Reader) (*mesh.TriangleMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}

	// Binary files may also start with "solid", so the size check wins
	if isBinary(data) || !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseBinary(bytes.NewReader(data))
	}
	return parseASCII(bytes.NewReader(data))
}

func isBinary(data []byte) bool {
	if len(data) < binaryPrefix {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:binaryPrefix])
	return uint64(len(data)) == binaryPrefix+uint64(count)*facetSize
}

// parseASCII parses an ASCII STL file. Facet normals are ignored; normals
// are derived from the vertex winding.
func parseASCII(reader io.Reader) (*mesh.TriangleMesh, error) {
	scanner := bufio.NewScanner(reader)
	builder := mesh.NewBuilder()

	var vertices []r3.Vec
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				builder.SetName(strings.Join(fields[1:], " "))
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", lineNo)
			}
			var coords [3]float64
			for i := range coords {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", lineNo, fields[i+1], err)
				}
				coords[i] = v
			}
			vertices = append(vertices, r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]})

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", lineNo, len(vertices))
			}
			builder.AddTriangle(vertices[0], vertices[1], vertices[2])
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return builder.Build()
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*mesh.TriangleMesh, error) {
	builder := mesh.NewBuilder()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00"))); name != "" {
		builder.SetName(name)
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	var f facet
	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		builder.AddTriangle(toVec(f.V1), toVec(f.V2), toVec(f.V3))
	}

	return builder.Build()
}

// facet is the on-disk layout of one binary STL triangle
type facet struct {
	Normal    [3]float32
	V1        [3]float32
	V2        [3]float32
	V3        [3]float32
	Attribute uint16
}

func toVec(v [3]float32) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
