package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/pfmray/pkg/math3d"
)

// ErrUnsupported is returned for glTF content the loader cannot decode.
var ErrUnsupported = errors.New("unsupported gltf content")

// LoadGLB loads the triangle primitives of a glTF or GLB file.
// Node transforms are ignored; vertices are taken in mesh space.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument converts a decoded glTF document into a Mesh.
func FromDocument(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("")

	for _, mat := range doc.Materials {
		mesh.Materials = append(mesh.Materials, readMaterial(mat))
	}

	for _, m := range doc.Meshes {
		if err := addPrimitives(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func readMaterial(mat *gltf.Material) Material {
	out := Material{Name: mat.Name, BaseColor: [4]float64{1, 1, 1, 1}}
	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		out.BaseColor = *pbr.BaseColorFactor
	}
	return out
}

func addPrimitives(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{
				V:        [3]int{base + indices[i], base + indices[i+1], base + indices[i+2]},
				Material: material,
			}
			for _, v := range f.V {
				if v >= len(mesh.Vertices) {
					return fmt.Errorf("index %d out of range (%d vertices)", v-base, len(positions))
				}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}
	return nil
}

// accessorBytes returns the buffer bytes an accessor reads from, its start
// offset, and the element stride.
func accessorBytes(doc *gltf.Document, idx, elemSize int) ([]byte, int, int, *gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d: %w", idx, ErrUnsupported)
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d has no buffer view: %w", idx, ErrUnsupported)
	}

	view := doc.BufferViews[*acc.BufferView]
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, 0, 0, nil, fmt.Errorf("buffer %d has no data: %w", view.Buffer, ErrUnsupported)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acc.ByteOffset
	if acc.Count > 0 && start+(acc.Count-1)*stride+elemSize > len(data) {
		return nil, 0, 0, nil, fmt.Errorf("accessor %d overruns its buffer", idx)
	}
	return data, start, stride, acc, nil
}

func readPositions(doc *gltf.Document, idx int) ([]math3d.Vec3f, error) {
	data, start, stride, acc, err := accessorBytes(doc, idx, 12)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("positions are %v/%v: %w", acc.Type, acc.ComponentType, ErrUnsupported)
	}

	out := make([]math3d.Vec3f, acc.Count)
	for i := range out {
		b := data[start+i*stride:]
		out[i] = math3d.V3f(
			math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
		)
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", idx, ErrUnsupported)
	}

	var size int
	switch doc.Accessors[idx].ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("index type %v: %w", doc.Accessors[idx].ComponentType, ErrUnsupported)
	}

	data, start, stride, acc, err := accessorBytes(doc, idx, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, acc.Count)
	for i := range out {
		b := data[start+i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}
