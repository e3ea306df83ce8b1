package geometry

import "github.com/go-gl/mathgl/mgl32"

// Primitive is an indexed triangle mesh. Vertices and Normals hold 3 floats
// per vertex; Indices hold 3 entries per triangle.
type Primitive struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

func (p Primitive) VertexCount() int   { return len(p.Vertices) / 3 }
func (p Primitive) TriangleCount() int { return len(p.Indices) / 3 }

// NewBox returns an axis aligned box centered on the origin, one unit long
// on X so that an instance scale on X stretches it to a segment's length.
// Each face has its own four vertices so the normals are flat and final.
func NewBox(width, height float32) Primitive {
	half := mgl32.Vec3{0.5, height / 2, width / 2}
	faces := []struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}

	var p Primitive
	for _, f := range faces {
		base := uint32(p.VertexCount())
		for _, s := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			v := f.n.Add(f.u.Mul(s[0])).Add(f.v.Mul(s[1]))
			v = mgl32.Vec3{v[0] * half[0], v[1] * half[1], v[2] * half[2]}
			p.Vertices = append(p.Vertices, v[0], v[1], v[2])
			p.Normals = append(p.Normals, f.n[0], f.n[1], f.n[2])
		}
		p.Indices = append(p.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	return p
}
