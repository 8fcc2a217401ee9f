package world

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world/block"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewTerrainGenerator(12345)
	b := NewTerrainGenerator(12345)

	pos := ChunkPos{X: 1, Y: 0, Z: -3}
	blocksA, lightA := a.Generate(pos)
	blocksB, lightB := b.Generate(pos)

	for x := 0; x < ChunkSize; x += 7 {
		for y := 0; y < ChunkSize; y += 7 {
			for z := 0; z < ChunkSize; z += 7 {
				idx := ChunkIndex{uint16(x), uint16(y), uint16(z)}
				if blocksA.Get(idx) != blocksB.Get(idx) {
					t.Fatalf("Один сид — одинаковый ландшафт, расхождение в %v", idx)
				}
				if lightA.Get(idx) != lightB.Get(idx) {
					t.Fatalf("Один сид — одинаковый свет, расхождение в %v", idx)
				}
			}
		}
	}
}

func TestGeneratorHighChunkIsHomogeneousAir(t *testing.T) {
	g := NewTerrainGenerator(42)

	// Чанк на y=10 (блоки 320+) заведомо выше любого ландшафта
	blocks, light := g.Generate(ChunkPos{Y: 10})
	if id, ok := blocks.IsHomogeneous(); !ok || id != block.AirBlockID {
		t.Error("Чанк высоко над ландшафтом обязан быть гомогенным воздухом")
	}
	if v, ok := light.IsHomogeneous(); !ok || v != FullSkyLight {
		t.Error("Воздушный чанк над ландшафтом обязан быть полностью освещён небом")
	}
}

func TestGeneratorDeepChunkIsHomogeneousStone(t *testing.T) {
	g := NewTerrainGenerator(42)

	blocks, _ := g.Generate(ChunkPos{Y: -4})
	if id, ok := blocks.IsHomogeneous(); !ok || id != block.StoneBlockID {
		t.Error("Глубокий чанк обязан быть гомогенным камнем")
	}
}

func TestGeneratorSurfaceColumn(t *testing.T) {
	g := NewTerrainGenerator(7)

	// Собираем колонку из чанков y=0 и y=1 и проверяем её структуру
	blocks0, _ := g.Generate(ChunkPos{})
	blocks1, _ := g.Generate(ChunkPos{Y: 1})

	column := make([]block.BlockID, 2*ChunkSize)
	for y := 0; y < ChunkSize; y++ {
		column[y] = blocks0.Get(ChunkIndex{5, uint16(y), 5})
		column[ChunkSize+y] = blocks1.Get(ChunkIndex{5, uint16(y), 5})
	}

	// Снизу камень
	if column[0] != block.StoneBlockID {
		t.Errorf("Дно колонки обязано быть камнем, получен %d", column[0])
	}
	// Сверху воздух
	if top := column[len(column)-1]; top != block.AirBlockID {
		t.Errorf("Верх колонки обязан быть воздухом, получен %d", top)
	}

	// Где-то в середине есть поверхность: трава или песок
	foundSurface := false
	for _, id := range column {
		if id == block.GrassBlockID || id == block.SandBlockID {
			foundSurface = true
			break
		}
	}
	if !foundSurface {
		t.Error("В колонке не найдена поверхность (трава или песок)")
	}
}
