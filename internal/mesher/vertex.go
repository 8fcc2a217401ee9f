package mesher

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// VertexScale — число позиционных единиц на один блок. При 16 единицах
// координата дальней грани чанка (32 блока) кодируется как 512 и помещается
// в 10-битное поле; масштаб 32 переполнял бы его на границе чанка.
const VertexScale = 16

// TerrainVertex — упакованная вершина ландшафта, ровно два 32-битных слова.
// Раскладка — контракт с вершинным шейдером, менять её нельзя:
//
//	PosAO:       [31:22] X, [21:12] Y, [11:2] Z (по 10 бит, 6.4 fixed-point,
//	             1/16 блока, диапазон 0..512), [1:0] AO
//	LightSideID: [31:28] небесный свет, [27:24] блочный свет,
//	             [18:17] ось нормали (0=X, 1=Y, 2=Z), [16] знак (0 = положительный),
//	             [15:0] идентификатор текстуры
type TerrainVertex struct {
	PosAO       uint32
	LightSideID uint32
}

// PackVertex собирает вершину из позиции (в единицах 1/16 блока), грани,
// света и текстуры. Значения обязаны лежать в своих битовых ширинах.
func PackVertex(pos [3]uint16, side Side, sky, blk uint8, tex block.TextureID, ao uint8) TerrainVertex {
	posAO := uint32(pos[0]&0x3FF)<<22 |
		uint32(pos[1]&0x3FF)<<12 |
		uint32(pos[2]&0x3FF)<<2 |
		uint32(ao&0x3)

	var sign uint32
	if !side.FacingPositive() {
		sign = 1
	}
	lightSideID := uint32(sky&0xF)<<28 |
		uint32(blk&0xF)<<24 |
		uint32(side.Axis())<<17 |
		sign<<16 |
		uint32(tex)

	return TerrainVertex{PosAO: posAO, LightSideID: lightSideID}
}

// Unpacked — распакованные поля вершины, используется в тестах и отладке
type Unpacked struct {
	Pos  [3]uint16
	AO   uint8
	Sky  uint8
	Blk  uint8
	Axis int
	Sign bool // true = отрицательная нормаль
	Tex  block.TextureID
}

// Unpack разбирает вершину обратно на поля
func (v TerrainVertex) Unpack() Unpacked {
	return Unpacked{
		Pos: [3]uint16{
			uint16(v.PosAO >> 22 & 0x3FF),
			uint16(v.PosAO >> 12 & 0x3FF),
			uint16(v.PosAO >> 2 & 0x3FF),
		},
		AO:   uint8(v.PosAO & 0x3),
		Sky:  uint8(v.LightSideID >> 28 & 0xF),
		Blk:  uint8(v.LightSideID >> 24 & 0xF),
		Axis: int(v.LightSideID >> 17 & 0x3),
		Sign: v.LightSideID>>16&1 == 1,
		Tex:  block.TextureID(v.LightSideID & 0xFFFF),
	}
}

// TerrainMesh — результат мешинга: список вершин и треугольные индексы
type TerrainMesh struct {
	Vertices []TerrainVertex
	Indices  []uint32
}

// IsEmpty — пустой меш не нужно загружать на GPU
func (m *TerrainMesh) IsEmpty() bool {
	return len(m.Indices) == 0
}
