package grass

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/midgard-grass/pkg/math"
)

// Sample is one point drawn on a triangle.
type Sample struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Sampler draws uniformly distributed points on triangles.
// A Sampler is not safe for concurrent use; give each goroutine its own.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler drawing from rng. A nil rng gets a randomly seeded source.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = newRand()
	}
	return &Sampler{rng: rng}
}

// Barycentric maps two uniform values in [0,1) to barycentric weights that are
// uniformly distributed over a triangle's area.
func Barycentric(r1, r2 float32) math.Vec3 {
	s := float32(gomath.Sqrt(float64(r1)))
	return math.Vec3{X: 1 - s, Y: s * (1 - r2), Z: s * r2}
}

// Sample appends count independent points on tri to dst and returns it.
// Points are not spaced apart; clusters are expected at high counts.
func (s *Sampler) Sample(tri Triangle, count uint32, dst []Sample) []Sample {
	for range count {
		b := Barycentric(s.rng.Float32(), s.rng.Float32())
		dst = append(dst, Sample{
			Position: tri.Positions[0].Scale(b.X).
				Add(tri.Positions[1].Scale(b.Y)).
				Add(tri.Positions[2].Scale(b.Z)),
			Normal: tri.Normal,
			UV: tri.UVs[0].Scale(b.X).
				Add(tri.UVs[1].Scale(b.Y)).
				Add(tri.UVs[2].Scale(b.Z)),
		})
	}
	return dst
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// deriveRand returns an independent generator seeded from parent.
func deriveRand(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(parent.Uint64(), parent.Uint64()))
}
