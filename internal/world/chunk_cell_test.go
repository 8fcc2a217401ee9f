package world

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world/block"
)

func newTestChunk(pos ChunkPos, signals *[]ChunkPos) *Chunk {
	signal := func(ChunkPos) {}
	if signals != nil {
		signal = func(p ChunkPos) { *signals = append(*signals, p) }
	}
	return NewChunk(pos, Homogeneous(block.AirBlockID), Homogeneous(FullSkyLight), signal)
}

func TestChunkDirtySignalEdgeTriggered(t *testing.T) {
	var signals []ChunkPos
	c := newTestChunk(ChunkPos{X: 1, Y: 2, Z: 3}, &signals)

	c.QueueEdit(ChunkIndex{0, 0, 0}, block.StoneBlockID)
	c.QueueEdit(ChunkIndex{1, 0, 0}, block.StoneBlockID)
	c.QueueEdit(ChunkIndex{2, 0, 0}, block.StoneBlockID)

	if len(signals) != 1 {
		t.Fatalf("Сигнал о грязном чанке обязан приходить ровно один раз, получено %d", len(signals))
	}
	if signals[0] != (ChunkPos{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Сигнал пришёл с чужой позицией %v", signals[0])
	}

	// После флаша следующая правка снова даёт сигнал
	c.Flush()
	c.QueueEdit(ChunkIndex{3, 0, 0}, block.StoneBlockID)
	if len(signals) != 2 {
		t.Errorf("После флаша сигнал обязан взводиться заново, получено %d", len(signals))
	}
}

func TestChunkFlushLastWriteWins(t *testing.T) {
	c := newTestChunk(ChunkPos{}, nil)

	idx := ChunkIndex{10, 10, 10}
	c.QueueEdit(idx, block.StoneBlockID)
	c.QueueEdit(idx, block.SandBlockID)
	c.QueueEdit(idx, block.WaterBlockID)

	changed, _ := c.Flush()
	if !changed {
		t.Fatal("Флаш с правками обязан сообщить об изменении")
	}

	snap := c.Snapshot()
	defer snap.Release()
	if id := snap.Blocks().Get(idx); id != block.WaterBlockID {
		t.Errorf("Несколько правок одной ячейки сворачиваются к последней: ожидался Water, получен %d", id)
	}
}

func TestChunkFlushNoEdits(t *testing.T) {
	c := newTestChunk(ChunkPos{}, nil)

	changed, boundary := c.Flush()
	if changed || boundary != 0 {
		t.Error("Флаш без правок не должен сообщать об изменениях")
	}
	if c.WasEverModified() {
		t.Error("Чанк без правок не может считаться изменённым")
	}
}

func TestChunkFlushBoundaryFlags(t *testing.T) {
	c := newTestChunk(ChunkPos{}, nil)

	// Правки на пяти разных гранях и одна внутренняя
	c.QueueEdit(ChunkIndex{0, 5, 5}, block.StoneBlockID)            // -X
	c.QueueEdit(ChunkIndex{MaxAxisIndex, 5, 5}, block.StoneBlockID) // +X
	c.QueueEdit(ChunkIndex{5, 0, 5}, block.StoneBlockID)            // -Y
	c.QueueEdit(ChunkIndex{5, MaxAxisIndex, 5}, block.StoneBlockID) // +Y
	c.QueueEdit(ChunkIndex{5, 5, MaxAxisIndex}, block.StoneBlockID) // +Z
	c.QueueEdit(ChunkIndex{15, 15, 15}, block.StoneBlockID)         // внутри

	_, boundary := c.Flush()

	want := FaceNegX | FacePosX | FaceNegY | FacePosY | FacePosZ
	if boundary != want {
		t.Errorf("Ожидались флаги граней %06b, получены %06b", want, boundary)
	}
	if !c.WasEverModified() {
		t.Error("После применённых правок чанк обязан считаться изменённым")
	}
}

func TestChunkFlushSameValueNotChanged(t *testing.T) {
	c := newTestChunk(ChunkPos{}, nil)

	// Запись воздуха в воздушный чанк — не изменение
	c.QueueEdit(ChunkIndex{0, 0, 0}, block.AirBlockID)
	changed, boundary := c.Flush()
	if changed {
		t.Error("Запись того же значения не должна считаться изменением")
	}
	if boundary != 0 {
		t.Errorf("Флаги граней без изменений обязаны быть пустыми, получены %06b", boundary)
	}
}

func TestChunkSnapshotStableDuringFlush(t *testing.T) {
	c := newTestChunk(ChunkPos{}, nil)

	idx := ChunkIndex{7, 7, 7}
	c.QueueEdit(idx, block.StoneBlockID)
	c.Flush()

	// Старый снапшот живёт во время следующего флаша
	old := c.Snapshot()
	c.QueueEdit(idx, block.SandBlockID)
	c.Flush()

	if id := old.Blocks().Get(idx); id != block.StoneBlockID {
		t.Errorf("Живой снапшот обязан видеть старое значение Stone, получен %d", id)
	}
	if !old.IsOrphaned() {
		t.Error("Вытесненный снапшот обязан быть помечен устаревшим")
	}
	old.Release()

	fresh := c.Snapshot()
	defer fresh.Release()
	if id := fresh.Blocks().Get(idx); id != block.SandBlockID {
		t.Errorf("Новый снапшот обязан видеть Sand, получен %d", id)
	}
}

func TestFaceSetForEachNeighbor(t *testing.T) {
	center := ChunkPos{X: 10, Y: 0, Z: -4}
	faces := FaceNegX | FacePosY

	var got []ChunkPos
	faces.ForEachNeighbor(center, func(pos ChunkPos) {
		got = append(got, pos)
	})

	if len(got) != 2 {
		t.Fatalf("Ожидались 2 соседа, получено %d", len(got))
	}
	want := map[ChunkPos]bool{
		{X: 9, Y: 0, Z: -4}:  true,
		{X: 10, Y: 1, Z: -4}: true,
	}
	for _, pos := range got {
		if !want[pos] {
			t.Errorf("Неожиданный сосед %v", pos)
		}
	}
}
