package mesher

import (
	"github.com/annel0/voxel-client/internal/vec"
)

// Side — одна из шести граней полного куба
type Side uint8

const (
	SideTop    Side = iota // +Y
	SideBottom             // -Y
	SideRight              // +X
	SideLeft               // -X
	SideFront              // +Z
	SideBack               // -Z
)

// FacingPositive сообщает, смотрит ли нормаль грани в положительную сторону оси
func (s Side) FacingPositive() bool {
	switch s {
	case SideTop, SideRight, SideFront:
		return true
	default:
		return false
	}
}

// Axis возвращает ось нормали грани: 0=X, 1=Y, 2=Z
func (s Side) Axis() int {
	switch s {
	case SideLeft, SideRight:
		return 0
	case SideTop, SideBottom:
		return 1
	default:
		return 2
	}
}

// Normal возвращает единичный вектор нормали грани
func (s Side) Normal() vec.Vec3 {
	switch s {
	case SideTop:
		return vec.Vec3{Y: 1}
	case SideBottom:
		return vec.Vec3{Y: -1}
	case SideRight:
		return vec.Vec3{X: 1}
	case SideLeft:
		return vec.Vec3{X: -1}
	case SideFront:
		return vec.Vec3{Z: 1}
	default:
		return vec.Vec3{Z: -1}
	}
}

// Clockwise — порядок обхода вершин квада для этой грани
func (s Side) Clockwise() bool {
	switch s {
	case SideBottom, SideFront, SideLeft:
		return true
	default:
		return false
	}
}

// UVLToXYZ переводит координаты (u, v, l), где (u, v) лежат в плоскости
// грани, а l отложен вдоль нормали, в относительное смещение xyz
func (s Side) UVLToXYZ(u, v, l int) vec.Vec3 {
	axis := s.Axis()
	if !s.FacingPositive() {
		l = -l
	}

	var out [3]int
	out[axis] = l
	out[(axis+1)%3] = u
	out[(axis+2)%3] = v
	return vec.Vec3{X: out[0], Y: out[1], Z: out[2]}
}

// EnumerateSides вызывает fn для каждой грани в фиксированном порядке
func EnumerateSides(fn func(Side)) {
	fn(SideRight)
	fn(SideLeft)
	fn(SideTop)
	fn(SideBottom)
	fn(SideFront)
	fn(SideBack)
}
