package world

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world/block"
)

func TestCompactHomogeneousRoundTrip(t *testing.T) {
	c := NewChunk(ChunkPos{X: 5, Y: -2, Z: 7}, Homogeneous(block.StoneBlockID), Homogeneous(LightValue(0)), func(ChunkPos) {})

	snap := c.Snapshot()
	compacted := Compact(snap)
	snap.Release()

	encoded := compacted.Encode()
	decoded, err := DecodeCompactedChunk(encoded)
	if err != nil {
		t.Fatalf("Декодирование: %v", err)
	}
	if decoded.Pos != (ChunkPos{X: 5, Y: -2, Z: 7}) {
		t.Errorf("Позиция потерялась: %v", decoded.Pos)
	}

	blocks, light, err := decoded.Expand()
	if err != nil {
		t.Fatalf("Разворачивание: %v", err)
	}
	if id, ok := blocks.IsHomogeneous(); !ok || id != block.StoneBlockID {
		t.Error("Гомогенный каменный чанк обязан восстановиться гомогенным")
	}
	if v, ok := light.IsHomogeneous(); !ok || v != 0 {
		t.Error("Гомогенный свет обязан восстановиться гомогенным")
	}
}

func TestCompactMixedRoundTrip(t *testing.T) {
	data := Homogeneous(block.AirBlockID)
	data.Set(ChunkIndex{0, 0, 0}, block.StoneBlockID)
	data.Set(ChunkIndex{10, 20, 30}, block.WaterBlockID)
	data.Set(ChunkIndex{31, 31, 31}, block.GrassBlockID)

	c := NewChunk(ChunkPos{}, data, Homogeneous(FullSkyLight), func(ChunkPos) {})

	snap := c.Snapshot()
	compacted := Compact(snap)
	snap.Release()

	decoded, err := DecodeCompactedChunk(compacted.Encode())
	if err != nil {
		t.Fatalf("Декодирование: %v", err)
	}
	blocks, _, err := decoded.Expand()
	if err != nil {
		t.Fatalf("Разворачивание: %v", err)
	}

	checks := []struct {
		idx  ChunkIndex
		want block.BlockID
	}{
		{ChunkIndex{0, 0, 0}, block.StoneBlockID},
		{ChunkIndex{10, 20, 30}, block.WaterBlockID},
		{ChunkIndex{31, 31, 31}, block.GrassBlockID},
		{ChunkIndex{1, 1, 1}, block.AirBlockID},
	}
	for _, check := range checks {
		if id := blocks.Get(check.idx); id != check.want {
			t.Errorf("Ячейка %v: ожидалось %d, получено %d", check.idx, check.want, id)
		}
	}
}

func TestDecodeCompactedChunkCorrupted(t *testing.T) {
	if _, err := DecodeCompactedChunk([]byte{1, 2, 3}); err == nil {
		t.Error("Мусор на входе обязан вернуть ошибку")
	}
	if _, err := DecodeCompactedChunk(nil); err == nil {
		t.Error("Пустой вход обязан вернуть ошибку")
	}
}

func TestStoreExportImport(t *testing.T) {
	src := newTestStore()
	pos := ChunkPos{X: 2, Y: 1, Z: 0}
	loadAir(t, src, pos)
	if err := src.SetBlock(pos.WorldOrigin().Offset(4, 4, 4), block.SandBlockID); err != nil {
		t.Fatalf("SetBlock: %v", err)
	}
	src.FlushAll()

	data, err := src.ExportChunk(pos)
	if err != nil {
		t.Fatalf("Экспорт: %v", err)
	}

	dst := newTestStore()
	if _, err := dst.ImportChunk(data); err != nil {
		t.Fatalf("Импорт: %v", err)
	}

	if id, err := dst.GetBlock(pos.WorldOrigin().Offset(4, 4, 4)); err != nil || id != block.SandBlockID {
		t.Errorf("Ожидался Sand после импорта, получено (%d, %v)", id, err)
	}

	// Экспорт незагруженного чанка — штатная ошибка
	if _, err := src.ExportChunk(ChunkPos{X: 99}); err == nil {
		t.Error("Экспорт незагруженного чанка обязан вернуть ошибку")
	}
}
