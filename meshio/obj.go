// Package meshio implements the two mesh decode collaborators: a
// Wavefront OBJ loader and the ASCII "tri" format's loader, both
// building a geom.Mesh via geom.MeshBuilder.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/raytracer/geom"
)

type objFaceVertex struct {
	v, vt, vn int
}

// LoadOBJ parses a Wavefront .obj file from disk, fan-triangulating any
// polygon faces. Faces missing texture coordinates or normals default
// to (0,0) and (0,0,0) respectively -- the core never requires either
// to be present.
func LoadOBJ(path string) (*geom.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open obj %q: %w", path, err)
	}
	defer f.Close()
	return DecodeOBJ(f)
}

// DecodeOBJ parses Wavefront OBJ data from r.
func DecodeOBJ(r io.Reader) (*geom.Mesh, error) {
	var positions []mgl32.Vec3
	var normals []mgl32.Vec3
	var uvs []mgl32.Vec2

	type face struct {
		verts []objFaceVertex
	}
	var faces []face

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			positions = append(positions, mgl32.Vec3{float32(x), float32(y), float32(z)})

		case "vn":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 32)
			y, _ := strconv.ParseFloat(fields[2], 32)
			z, _ := strconv.ParseFloat(fields[3], 32)
			normals = append(normals, mgl32.Vec3{float32(x), float32(y), float32(z)})

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, mgl32.Vec2{float32(u), float32(v)})

		case "f":
			if len(fields) < 4 {
				continue
			}
			var verts []objFaceVertex
			for _, tok := range fields[1:] {
				verts = append(verts, parseFaceVertex(tok))
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(verts); i++ {
				faces = append(faces, face{verts: []objFaceVertex{verts[0], verts[i], verts[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: scan obj: %w", err)
	}

	safePos := func(i int) mgl32.Vec3 {
		if i >= 0 && i < len(positions) {
			return positions[i]
		}
		return mgl32.Vec3{}
	}
	safeNormal := func(i int) mgl32.Vec3 {
		if i >= 0 && i < len(normals) {
			return normals[i]
		}
		return mgl32.Vec3{}
	}
	safeUV := func(i int) mgl32.Vec2 {
		if i >= 0 && i < len(uvs) {
			return uvs[i]
		}
		return mgl32.Vec2{}
	}

	builder := geom.NewMeshBuilder()
	for _, face := range faces {
		var tri geom.Triangle
		var uv [3]mgl32.Vec2
		var normal [3]mgl32.Vec3
		for i, fv := range face.verts {
			pos := safePos(fv.v)
			switch i {
			case 0:
				tri.V0 = pos
			case 1:
				tri.V1 = pos
			case 2:
				tri.V2 = pos
			}
			uv[i] = safeUV(fv.vt)
			normal[i] = safeNormal(fv.vn)
		}
		builder.AddTriangle(tri, uv, normal)
	}

	return builder.Build()
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn",
// "v/vt/vn". Returns 0-based indices (-1 if absent). OBJ indices are
// 1-based and may be negative (relative to the end of the pool); only
// the common positive case is handled here.
func parseFaceVertex(tok string) objFaceVertex {
	parseIdx := func(s string) int {
		if s == "" {
			return -1
		}
		n, _ := strconv.Atoi(s)
		if n > 0 {
			return n - 1
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	fv := objFaceVertex{v: -1, vt: -1, vn: -1}
	if len(parts) > 0 {
		fv.v = parseIdx(parts[0])
	}
	if len(parts) > 1 {
		fv.vt = parseIdx(parts[1])
	}
	if len(parts) > 2 {
		fv.vn = parseIdx(parts[2])
	}
	return fv
}
