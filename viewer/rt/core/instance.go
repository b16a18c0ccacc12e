package core

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// InstanceRaw is the per-instance record uploaded to the GPU.
// color @location(2) at offset 0, position @location(3) at offset 16.
type InstanceRaw struct {
	Color    [4]float32
	Position [3]float32
}

type Instance struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

func NewInstance(position mgl32.Vec3, color mgl32.Vec4) Instance {
	return Instance{Position: position, Color: color}
}

func (i Instance) Raw() InstanceRaw {
	return InstanceRaw{
		Color:    i.Color,
		Position: i.Position,
	}
}

type GridBounds struct {
	X, Y, Z int
	Spacing float32
}

func (b GridBounds) Count() int {
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return 0
	}
	return b.X * b.Y * b.Z
}

// GridInstances yields one instance per grid cell, x-major then y then z,
// centered on the origin. Each call to the returned sequence starts over.
func GridInstances(b GridBounds) iter.Seq[Instance] {
	return func(yield func(Instance) bool) {
		if b.Count() == 0 {
			return
		}
		offset := mgl32.Vec3{
			float32(b.X-1) * b.Spacing / 2,
			float32(b.Y-1) * b.Spacing / 2,
			float32(b.Z-1) * b.Spacing / 2,
		}
		for x := 0; x < b.X; x++ {
			for y := 0; y < b.Y; y++ {
				for z := 0; z < b.Z; z++ {
					pos := mgl32.Vec3{
						float32(x) * b.Spacing,
						float32(y) * b.Spacing,
						float32(z) * b.Spacing,
					}.Sub(offset)
					color := mgl32.Vec4{gridShade(x, b.X), gridShade(y, b.Y), gridShade(z, b.Z), 1}
					if !yield(NewInstance(pos, color)) {
						return
					}
				}
			}
		}
	}
}

func gridShade(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// RawInstances collects the GPU records of a sequence.
func RawInstances(seq iter.Seq[Instance], sizeHint int) []InstanceRaw {
	raw := make([]InstanceRaw, 0, max(sizeHint, 0))
	for inst := range seq {
		raw = append(raw, inst.Raw())
	}
	return raw
}
