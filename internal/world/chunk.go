package world

import (
	"github.com/annel0/voxel-client/internal/vec"
)

// Размер чанка — степень двойки: 2^5 = 32
const (
	ChunkBits   = vec.ChunkBits
	ChunkSize   = vec.ChunkSize
	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// MaxAxisIndex — максимальный локальный индекс по любой оси
const MaxAxisIndex = ChunkSize - 1

// ChunkPos представляет координату чанка в сетке чанков
type ChunkPos struct {
	X, Y, Z int
}

// Offset возвращает позицию чанка, смещённую на (dx, dy, dz) чанков
func (p ChunkPos) Offset(dx, dy, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// WorldOrigin возвращает мировую координату блока в углу чанка (минимум по всем осям)
func (p ChunkPos) WorldOrigin() BlockPos {
	return BlockPos{X: p.X << ChunkBits, Y: p.Y << ChunkBits, Z: p.Z << ChunkBits}
}

// BlockPos представляет мировую координату блока
type BlockPos struct {
	X, Y, Z int
}

// ChunkAndLocal раскладывает мировую координату на координату чанка и локальный индекс.
// Деление — floor-division по степени двойки, корректно для отрицательных координат.
func (p BlockPos) ChunkAndLocal() (ChunkPos, ChunkIndex) {
	cp := ChunkPos{X: p.X >> ChunkBits, Y: p.Y >> ChunkBits, Z: p.Z >> ChunkBits}
	mask := ChunkSize - 1
	idx := ChunkIndex{uint16(p.X & mask), uint16(p.Y & mask), uint16(p.Z & mask)}
	return cp, idx
}

// Offset возвращает мировую координату, смещённую на (dx, dy, dz) блоков
func (p BlockPos) Offset(dx, dy, dz int) BlockPos {
	return BlockPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// ChunkIndex — локальный индекс блока внутри чанка: (x, y, z), каждый в [0, 32)
type ChunkIndex [3]uint16

// InChunkBounds проверяет, что индекс лежит внутри чанка
func InChunkBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// linear возвращает смещение в плотном буфере.
// Порядок осей фиксирован: X — внешняя, Z — средняя, Y — внутренняя.
func (i ChunkIndex) linear() int {
	return ChunkArea*int(i[0]) + ChunkSize*int(i[2]) + int(i[1])
}

// LightValue — упакованная освещённость: небесный свет в старшем полубайте,
// блочный — в младшем, каждый канал 0–15
type LightValue uint8

// PackLight собирает LightValue из каналов неба и блочного света
func PackLight(sky, blk uint8) LightValue {
	return LightValue(sky&0xF)<<4 | LightValue(blk&0xF)
}

// FullSkyLight — максимальный небесный свет без блочного
const FullSkyLight = LightValue(15 << 4)

// Sky возвращает канал небесного света (0–15)
func (l LightValue) Sky() uint8 {
	return uint8(l >> 4)
}

// Block возвращает канал блочного света (0–15)
func (l LightValue) Block() uint8 {
	return uint8(l & 0xF)
}

// Max возвращает поканальный максимум двух значений.
// Насыщающий максимум вместо среднего: одиночный яркий источник
// должен доминировать в сглаженном освещении, а не размываться.
func (l LightValue) Max(other LightValue) LightValue {
	sky := l.Sky()
	if o := other.Sky(); o > sky {
		sky = o
	}
	blk := l.Block()
	if o := other.Block(); o > blk {
		blk = o
	}
	return PackLight(sky, blk)
}

// Intensity возвращает суммарную интенсивность обоих каналов (для выбора диагонали квада)
func (l LightValue) Intensity() int {
	return int(l.Sky()) + int(l.Block())
}
