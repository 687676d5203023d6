package scene

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/quantumfamily/archetype/internal/roles"
)

// Kind identifies what a primitive draws.
type Kind int

const (
	KindCubeEdge Kind = iota
	KindSphere
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindCubeEdge:
		return "cube-edge"
	case KindSphere:
		return "sphere"
	case KindLabel:
		return "label"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Always-visible series groups: the grey core sphere and the nested cube
// frame drawn in every state.
const (
	CoreSeries  = "core"
	FrameSeries = "frame"
)

// SeriesName is the chart series group holding every primitive of band b.
func SeriesName(b roles.Band) string {
	return fmt.Sprintf("band-%d", int(b))
}

// Primitive is one drawable element. Lines holds polylines for cube edges
// and spheres; labels use Text and Position instead. Band is the owning band,
// or for a shared cube the band whose size it takes.
type Primitive struct {
	Kind     Kind
	Band     roles.Band
	Shared   bool
	Color    string
	Opacity  float64
	Lines    [][]r3.Vec
	Text     string
	Position r3.Vec
}

// Series returns the chart series group the primitive belongs to.
func (p Primitive) Series() string {
	if p.Shared {
		if p.Kind == KindCubeEdge {
			return FrameSeries
		}
		return CoreSeries
	}
	return SeriesName(p.Band)
}

// Options controls the fixed geometry. Slices indexed by band use index 0
// for band 0 where that band has no element of its own.
type Options struct {
	// CubeSizes[k-1] is the edge length of band k's cube.
	CubeSizes  []float64 `json:"cube_sizes"`
	CubeColors []string  `json:"cube_colors"`
	// SphereRadii[k] is band k's sphere radius; band 0 has none.
	SphereRadii   []float64 `json:"sphere_radii"`
	SphereColor   string    `json:"sphere_color"`
	SphereOpacity float64   `json:"sphere_opacity"`
	CoreRadius    float64   `json:"core_radius"`
	CoreColor     string    `json:"core_color"`
	CoreOpacity   float64   `json:"core_opacity"`
	LabelOffset   float64   `json:"label_offset"`
	Rings         int       `json:"rings"`
	Meridians     int       `json:"meridians"`
}

// DefaultOptions returns the standard figure.
func DefaultOptions() Options {
	return Options{
		CubeSizes:     []float64{1, 2, 3, 4, 5},
		CubeColors:    []string{"#1f77b4", "#2ca02c", "#ff7f0e", "#9467bd", "#d62728"},
		SphereRadii:   []float64{0, 0.5, 1, 1.5, 2, 2.5},
		SphereColor:   "#088cff",
		SphereOpacity: 0.6,
		CoreRadius:    0.2,
		CoreColor:     "#808080",
		CoreOpacity:   0.5,
		LabelOffset:   0.5,
		Rings:         7,
		Meridians:     12,
	}
}

// Validate checks that every per-band table covers all bands.
func (o Options) Validate() error {
	nonZero := roles.NumBands - 1
	if len(o.CubeSizes) != nonZero {
		return fmt.Errorf("cube_sizes must have %d entries, got %d", nonZero, len(o.CubeSizes))
	}
	if len(o.CubeColors) != nonZero {
		return fmt.Errorf("cube_colors must have %d entries, got %d", nonZero, len(o.CubeColors))
	}
	if len(o.SphereRadii) != roles.NumBands {
		return fmt.Errorf("sphere_radii must have %d entries, got %d", roles.NumBands, len(o.SphereRadii))
	}
	for i, s := range o.CubeSizes {
		if s <= 0 {
			return fmt.Errorf("cube_sizes[%d] must be positive, got %v", i, s)
		}
	}
	for i, r := range o.SphereRadii {
		if r < 0 {
			return fmt.Errorf("sphere_radii[%d] must not be negative, got %v", i, r)
		}
	}
	if o.CoreRadius < 0 {
		return errors.New("core_radius must not be negative")
	}
	if o.Rings < 1 || o.Meridians < 1 {
		return fmt.Errorf("wireframe needs at least one ring and meridian, got %d/%d", o.Rings, o.Meridians)
	}
	return nil
}

// Scene is the immutable set of primitives plus a precomputed visibility
// mask per band.
type Scene struct {
	Primitives []Primitive
	names      []string
	masks      [roles.NumBands][]bool
	// extent bounds every primitive on each axis; the chart fixes its axes
	// to it so toggling bands never rescales the view.
	extent float64
}

// Build precomputes the primitives for every band. names[k] labels band k.
// The nested cubes are shared so every state shows the full frame; only the
// sphere and label follow the band.
func Build(o Options, names []string) (*Scene, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(names) != roles.NumBands {
		return nil, fmt.Errorf("need %d role names, got %d", roles.NumBands, len(names))
	}

	s := &Scene{names: append([]string(nil), names...)}
	edges := CubeEdges()

	for b := roles.MinBand; b <= roles.MaxBand; b++ {
		radius := 0.0
		if b > roles.MinBand {
			size := o.CubeSizes[b-1]
			verts := CubeVertices(size)
			lines := make([][]r3.Vec, 0, len(edges))
			for _, e := range edges {
				lines = append(lines, []r3.Vec{verts[e[0]], verts[e[1]]})
			}
			s.Primitives = append(s.Primitives, Primitive{
				Kind:    KindCubeEdge,
				Band:    b,
				Shared:  true,
				Color:   o.CubeColors[b-1],
				Opacity: 1,
				Lines:   lines,
			})

			radius = o.SphereRadii[b]
			if radius > 0 {
				s.Primitives = append(s.Primitives, Primitive{
					Kind:    KindSphere,
					Band:    b,
					Color:   o.SphereColor,
					Opacity: o.SphereOpacity,
					Lines:   SphereWireframe(radius, o.Rings, o.Meridians),
				})
			}
		}

		z := o.LabelOffset
		if b > roles.MinBand {
			z = radius + o.LabelOffset
			s.extent = math.Max(s.extent, math.Max(o.CubeSizes[b-1]/2, radius))
		}
		s.extent = math.Max(s.extent, z)
		s.Primitives = append(s.Primitives, Primitive{
			Kind:     KindLabel,
			Band:     b,
			Color:    "#000000",
			Opacity:  1,
			Text:     names[b],
			Position: r3.Vec{Z: z},
		})
	}

	if o.CoreRadius > 0 {
		s.Primitives = append(s.Primitives, Primitive{
			Kind:    KindSphere,
			Shared:  true,
			Color:   o.CoreColor,
			Opacity: o.CoreOpacity,
			Lines:   SphereWireframe(o.CoreRadius, o.Rings, o.Meridians),
		})
	}

	for b := range s.masks {
		mask := make([]bool, len(s.Primitives))
		for i, p := range s.Primitives {
			mask[i] = p.Shared || p.Band == roles.Band(b)
		}
		s.masks[b] = mask
	}
	return s, nil
}

// Mask reports, per primitive, whether it is visible when b is active. An
// out-of-range band shows only the shared primitives.
func (s *Scene) Mask(b roles.Band) []bool {
	if !b.Valid() {
		mask := make([]bool, len(s.Primitives))
		for i, p := range s.Primitives {
			mask[i] = p.Shared
		}
		return mask
	}
	return append([]bool(nil), s.masks[b]...)
}

// Selection is Mask expressed per series group, the form the chart legend
// and the client-side slider use.
func (s *Scene) Selection(b roles.Band) map[string]bool {
	sel := make(map[string]bool, roles.NumBands+1)
	for _, p := range s.Primitives {
		sel[p.Series()] = false
	}
	for i, visible := range s.Mask(b) {
		if visible {
			sel[s.Primitives[i].Series()] = true
		}
	}
	return sel
}

// Selections returns Selection for every band, indexed by band.
func (s *Scene) Selections() []map[string]bool {
	out := make([]map[string]bool, roles.NumBands)
	for b := range out {
		out[b] = s.Selection(roles.Band(b))
	}
	return out
}

// Names returns the label text per band.
func (s *Scene) Names() []string {
	return append([]string(nil), s.names...)
}
