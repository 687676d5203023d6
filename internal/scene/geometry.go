// Package scene builds the nested cube and sphere figure shown on the result
// page and the per-band visibility masks the slider switches between.
package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CubeVertices returns the 8 corners of an axis-aligned cube of the given
// edge length centred on the origin. Vertices are ordered x-major, so index
// i has x = bit 2, y = bit 1, z = bit 0.
func CubeVertices(size float64) []r3.Vec {
	h := size / 2
	coords := [2]float64{-h, h}
	verts := make([]r3.Vec, 0, 8)
	for _, x := range coords {
		for _, y := range coords {
			for _, z := range coords {
				verts = append(verts, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return verts
}

// cubeEdges is shared by every cube since edges depend only on vertex order.
var cubeEdges = func() [][2]int {
	unit := CubeVertices(1)
	var edges [][2]int
	for i := range unit {
		for j := i + 1; j < len(unit); j++ {
			if l1(r3.Sub(unit[i], unit[j])) == 1 {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}()

// CubeEdges returns the 12 vertex index pairs joined by a cube edge, that is
// the pairs whose L1 distance equals the edge length.
func CubeEdges() [][2]int {
	out := make([][2]int, len(cubeEdges))
	copy(out, cubeEdges)
	return out
}

func l1(v r3.Vec) float64 {
	return math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
}

// SphereWireframe approximates a sphere centred on the origin with
// latitude rings and meridian arcs. Each returned slice is one polyline.
// rings excludes the poles; every ring is closed.
func SphereWireframe(radius float64, rings, meridians int) [][]r3.Vec {
	const segments = 36
	var lines [][]r3.Vec

	for i := 1; i <= rings; i++ {
		theta := math.Pi * float64(i) / float64(rings+1)
		z := radius * math.Cos(theta)
		rr := radius * math.Sin(theta)
		ring := make([]r3.Vec, 0, segments+1)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / segments
			ring = append(ring, r3.Vec{X: rr * math.Cos(phi), Y: rr * math.Sin(phi), Z: z})
		}
		lines = append(lines, ring)
	}

	const arcSteps = segments / 2
	for m := 0; m < meridians; m++ {
		phi := 2 * math.Pi * float64(m) / float64(meridians)
		arc := make([]r3.Vec, 0, arcSteps+1)
		for s := 0; s <= arcSteps; s++ {
			theta := math.Pi * float64(s) / arcSteps
			arc = append(arc, r3.Vec{
				X: radius * math.Sin(theta) * math.Cos(phi),
				Y: radius * math.Sin(theta) * math.Sin(phi),
				Z: radius * math.Cos(theta),
			})
		}
		lines = append(lines, arc)
	}
	return lines
}
