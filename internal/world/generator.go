package world

import (
	"github.com/annel0/voxel-client/internal/util"
	"github.com/annel0/voxel-client/internal/world/block"
)

// Параметры демо-ландшафта
const (
	terrainBase      = 10   // Минимальная высота поверхности
	terrainAmplitude = 24.0 // Перепад высот
	seaLevel         = 18   // Уровень воды
	noiseScale       = 0.01 // Масштаб шума по горизонтали
)

// TerrainGenerator строит демонстрационный ландшафт по шуму Перлина:
// холмы из камня и земли, трава сверху, вода и песок у уровня моря,
// редкая растительность. Свет — простой колоночный skylight.
type TerrainGenerator struct {
	noise *util.NoiseGenerator
	seed  int64
}

// NewTerrainGenerator создаёт генератор с указанным сидом
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		noise: util.NewNoiseGenerator(seed),
		seed:  seed,
	}
}

// surfaceHeight возвращает высоту поверхности для мировой колонки (x, z)
func (g *TerrainGenerator) surfaceHeight(wx, wz int) int {
	n := g.noise.Noise2D(float64(wx)*noiseScale, float64(wz)*noiseScale)
	return terrainBase + int(n*terrainAmplitude)
}

// Generate строит данные блоков и света для позиции чанка.
// Чанки целиком над ландшафтом и водой возвращаются гомогенным воздухом,
// целиком под поверхностью — гомогенным камнем, без аллокации массивов.
func (g *TerrainGenerator) Generate(pos ChunkPos) (ChunkData[block.BlockID], ChunkData[LightValue]) {
	origin := pos.WorldOrigin()

	// Диапазон высот поверхности внутри чанка — для гомогенных срезов
	minH, maxH := g.heightRange(origin.X, origin.Z)

	if origin.Y > maxH && origin.Y > seaLevel {
		return Homogeneous(block.AirBlockID), Homogeneous(FullSkyLight)
	}
	if origin.Y+ChunkSize <= minH-1 {
		return Homogeneous(block.StoneBlockID), Homogeneous(LightValue(0))
	}

	blocks := make([]block.BlockID, ChunkVolume)
	light := make([]LightValue, ChunkVolume)

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			wx, wz := origin.X+x, origin.Z+z
			h := g.surfaceHeight(wx, wz)
			base := ChunkArea*x + ChunkSize*z

			for y := 0; y < ChunkSize; y++ {
				wy := origin.Y + y
				blocks[base+y] = g.blockAt(wx, wy, wz, h)
				if wy > h && wy > seaLevel {
					light[base+y] = FullSkyLight
				}
			}
		}
	}

	blockData, _ := FromSlice(blocks)
	lightData, _ := FromSlice(light)
	return blockData, lightData
}

// blockAt выбирает блок для мировой координаты при известной высоте колонки
func (g *TerrainGenerator) blockAt(wx, wy, wz, h int) block.BlockID {
	switch {
	case wy < h-3:
		return block.StoneBlockID
	case wy < h:
		return block.DirtBlockID
	case wy == h:
		if h <= seaLevel+1 {
			return block.SandBlockID
		}
		return block.GrassBlockID
	case wy <= seaLevel:
		return block.WaterBlockID
	case wy == h+1 && h > seaLevel+1:
		return g.decoration(wx, wz)
	default:
		return block.AirBlockID
	}
}

// decoration редко сажает растительность на травяных колонках
func (g *TerrainGenerator) decoration(wx, wz int) block.BlockID {
	// Детерминированный хеш колонки, без дополнительного шума
	hash := uint64(wx)*0x9E3779B97F4A7C15 ^ uint64(wz)*0xC2B2AE3D27D4EB4F ^ uint64(g.seed)
	hash ^= hash >> 29
	switch {
	case hash%37 == 0:
		return block.TallGrassBlockID
	case hash%211 == 0:
		return block.FlowerBlockID
	default:
		return block.AirBlockID
	}
}

// heightRange оценивает минимум и максимум высоты по углам и центру чанка.
// Оценка консервативная: при сомнении чанк генерируется помассивно.
func (g *TerrainGenerator) heightRange(ox, oz int) (int, int) {
	samples := [5][2]int{
		{ox, oz},
		{ox + MaxAxisIndex, oz},
		{ox, oz + MaxAxisIndex},
		{ox + MaxAxisIndex, oz + MaxAxisIndex},
		{ox + ChunkSize/2, oz + ChunkSize/2},
	}
	minH, maxH := g.surfaceHeight(samples[0][0], samples[0][1]), 0
	for _, s := range samples {
		h := g.surfaceHeight(s[0], s[1])
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	// Запас на декорации сверху и градиент шума между сэмплами
	return minH - 4, maxH + 4
}
