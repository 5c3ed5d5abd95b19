package utils

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3ArrayTo32 converts to the packed form gltf accessors expect.
func Vec3ArrayTo32(in []mgl64.Vec3) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
	}
	return out
}

func FlattenVec3Array(in []mgl64.Vec3) []float32 {
	out := make([]float32, 0, len(in)*3)
	for _, v := range in {
		out = append(out, float32(v[0]), float32(v[1]), float32(v[2]))
	}
	return out
}

func FlattenFaceArray(in [][3]int) []uint32 {
	out := make([]uint32, 0, len(in)*3)
	for _, f := range in {
		out = append(out, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return out
}
