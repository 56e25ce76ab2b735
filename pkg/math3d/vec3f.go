package math3d

// Vec3f is a single-precision 3D vector, the storage format of mesh vertices
// (glTF positions are float32). Arithmetic happens after promotion with Vec3.
type Vec3f struct {
	X, Y, Z float32
}

// V3f creates a new Vec3f.
func V3f(x, y, z float32) Vec3f {
	return Vec3f{x, y, z}
}

// Vec3 promotes the vector to double precision.
func (v Vec3f) Vec3() Vec3 {
	return Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}
