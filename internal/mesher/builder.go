package mesher

import (
	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"
)

// FaceAO — четыре 2-битных значения затенения углов, упакованные в байт
type FaceAO uint8

// Сдвиги углов внутри FaceAO
const (
	aoShiftNegPos = 0
	aoShiftNegNeg = 2
	aoShiftPosNeg = 4
	aoShiftPosPos = 6
)

// Corner извлекает 2-битное значение AO по сдвигу угла
func (a FaceAO) Corner(shift uint8) uint8 {
	return uint8(a>>shift) & 3
}

// aoValue вычисляет затенение угла по трём соседям в касательной
// плоскости. Если оба рёберных соседа заняты, угол полностью скрыт.
func aoValue(edge1, corner, edge2 bool) uint8 {
	if edge1 && edge2 {
		return 0
	}
	v := uint8(3)
	if edge1 {
		v--
	}
	if edge2 {
		v--
	}
	if corner {
		v--
	}
	return v
}

// VoxelFace — состояние одной ячейки маски среза на время одного прохода
type VoxelFace struct {
	AO      FaceAO
	Light   FaceLight
	ID      block.BlockID
	Visited bool
}

// sameSignature: квад растёт только по ячейкам с идентичной сигнатурой
func (f VoxelFace) sameSignature(other VoxelFace) bool {
	return !other.Visited && f.ID == other.ID && f.AO == other.AO && f.Light == other.Light
}

// VoxelQuad — слитый прямоугольник граней в плоскости среза
type VoxelQuad struct {
	AO     FaceAO
	Light  FaceLight
	ID     block.BlockID
	Width  int
	Height int
}

// Порядки индексов квада. Развёрнутая диагональ спасает от швов
// интерполяции на частично затенённых квадах.
var (
	flippedQuadCW  = [6]uint32{0, 1, 2, 3, 2, 1}
	flippedQuadCCW = [6]uint32{2, 1, 0, 1, 2, 3}
	normalQuadCW   = [6]uint32{3, 2, 0, 0, 1, 3}
	normalQuadCCW  = [6]uint32{0, 2, 3, 3, 1, 0}
)

// sideTextureIndex переводит грань в индекс массива текстур блока
// (+X, -X, +Y, -Y, +Z, -Z)
func sideTextureIndex(side Side) int {
	switch side {
	case SideRight:
		return 0
	case SideLeft:
		return 1
	case SideTop:
		return 2
	case SideBottom:
		return 3
	case SideFront:
		return 4
	default:
		return 5
	}
}

// MeshBuilder накапливает вершины и индексы строящегося меша
type MeshBuilder struct {
	mesh TerrainMesh
}

// Take забирает готовый меш из билдера
func (b *MeshBuilder) Take() TerrainMesh {
	return b.mesh
}

// AddQuad добавляет один квад полного куба. pos — локальная координата
// ячейки-якоря квада в чанке.
func (b *MeshBuilder) AddQuad(quad VoxelQuad, side Side, x, y, z int) {
	aoPP := quad.AO.Corner(aoShiftPosPos)
	aoPN := quad.AO.Corner(aoShiftPosNeg)
	aoNN := quad.AO.Corner(aoShiftNegNeg)
	aoNP := quad.AO.Corner(aoShiftNegPos)

	// Диагональ с меньшей суммой затенения и света разворачивается,
	// чтобы интерполяция шла вдоль более тёмной диагонали
	scorePP := int(aoPP) + quad.Light.Intensity(cornerPosPos)
	scorePN := int(aoPN) + quad.Light.Intensity(cornerPosNeg)
	scoreNN := int(aoNN) + quad.Light.Intensity(cornerNegNeg)
	scoreNP := int(aoNP) + quad.Light.Intensity(cornerNegPos)
	flipped := scorePP+scoreNN > scorePN+scoreNP

	var indices [6]uint32
	switch {
	case flipped && side.Clockwise():
		indices = flippedQuadCW
	case flipped:
		indices = flippedQuadCCW
	case side.Clockwise():
		indices = normalQuadCW
	default:
		indices = normalQuadCCW
	}

	idxStart := uint32(len(b.mesh.Vertices))
	for _, idx := range indices {
		b.mesh.Indices = append(b.mesh.Indices, idxStart+idx)
	}

	tex := block.MustGet(quad.ID).Textures()[sideTextureIndex(side)]

	vert := func(ox, oy, oz int, ao uint8, corner int) {
		pos := [3]uint16{
			uint16(VertexScale * (x + ox)),
			uint16(VertexScale * (y + oy)),
			uint16(VertexScale * (z + oz)),
		}
		light := quad.Light[corner]
		b.mesh.Vertices = append(b.mesh.Vertices,
			PackVertex(pos, side, light.Sky(), light.Block(), tex, ao))
	}

	h := 0
	if side.FacingPositive() {
		h = 1
	}
	qw, qh := quad.Width, quad.Height

	switch side {
	case SideLeft, SideRight:
		vert(h, qw, 0, aoPN, cornerPosNeg)
		vert(h, qw, qh, aoPP, cornerPosPos)
		vert(h, 0, 0, aoNN, cornerNegNeg)
		vert(h, 0, qh, aoNP, cornerNegPos)

	case SideTop, SideBottom:
		vert(0, h, qh, aoPN, cornerPosNeg)
		vert(qw, h, qh, aoPP, cornerPosPos)
		vert(0, h, 0, aoNN, cornerNegNeg)
		vert(qw, h, 0, aoNP, cornerNegPos)

	case SideFront, SideBack:
		vert(0, qh, h, aoNP, cornerNegPos)
		vert(qw, qh, h, aoPP, cornerPosPos)
		vert(0, 0, h, aoNN, cornerNegNeg)
		vert(qw, 0, h, aoPN, cornerPosNeg)
	}
}

// Индексы креста: обе плоскости видны с двух сторон
var crossIndices = [24]uint32{
	0, 1, 2, 0, 2, 3, 0, 2, 1, 0, 3, 2,
	4, 5, 6, 4, 6, 7, 4, 6, 5, 4, 7, 6,
}

// AddCross добавляет крестовую геометрию растительности: две
// диагональные плоскости, слегка утопленные внутрь ячейки.
func (b *MeshBuilder) AddCross(id block.BlockID, light world.LightValue, x, y, z int) {
	tex := block.MustGet(id).Textures()[sideTextureIndex(SideRight)]

	idxStart := uint32(len(b.mesh.Vertices))
	for _, idx := range crossIndices {
		b.mesh.Indices = append(b.mesh.Indices, idxStart+idx)
	}

	vert := func(ox, oy, oz int) {
		pos := [3]uint16{
			uint16(VertexScale*x + ox),
			uint16(VertexScale*y + oy),
			uint16(VertexScale*z + oz),
		}
		b.mesh.Vertices = append(b.mesh.Vertices,
			PackVertex(pos, SideRight, light.Sky(), light.Block(), tex, 3))
	}

	// Не ровно 0 и 16: на границе ячейки шейдер ландшафта даёт
	// артефакты заворачивания на верхушках крестов
	l, h := 1, 15

	vert(l, 0, l)
	vert(l, h, l)
	vert(h, h, h)
	vert(h, 0, h)

	vert(l, 0, h)
	vert(l, h, h)
	vert(h, h, l)
	vert(h, 0, l)
}
