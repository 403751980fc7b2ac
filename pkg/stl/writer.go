package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/gomold/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Encode writes m as binary STL
func Encode(w io.Writer, m *mesh.TriangleMesh) error {
	bw := bufio.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, m.Name())
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.FaceCount())); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i := 0; i < m.FaceCount(); i++ {
		tri := m.Triangle(i)
		normal, _ := tri.Normal()
		f := facet{
			Normal: toFloat32(normal),
			V1:     toFloat32(tri.V1),
			V2:     toFloat32(tri.V2),
			V3:     toFloat32(tri.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return bw.Flush()
}

// Save writes m to filename as binary STL
func Save(filename string, m *mesh.TriangleMesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func toFloat32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
