package world

import (
	"sync"
	"sync/atomic"

	"github.com/annel0/voxel-client/internal/world/block"
)

// FaceSet — битовая маска шести граней чанка
type FaceSet uint8

const (
	FaceNegX FaceSet = 1 << iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

// faceOffsets сопоставляет грани смещение соседнего чанка
var faceOffsets = [6]struct {
	face       FaceSet
	dx, dy, dz int
}{
	{FaceNegX, -1, 0, 0},
	{FacePosX, 1, 0, 0},
	{FaceNegY, 0, -1, 0},
	{FacePosY, 0, 1, 0},
	{FaceNegZ, 0, 0, -1},
	{FacePosZ, 0, 0, 1},
}

// ForEachNeighbor вызывает fn для каждой грани из набора, передавая позицию
// соседнего чанка за этой гранью
func (f FaceSet) ForEachNeighbor(center ChunkPos, fn func(ChunkPos)) {
	for _, o := range faceOffsets {
		if f&o.face != 0 {
			fn(center.Offset(o.dx, o.dy, o.dz))
		}
	}
}

// PendingEdit — отложенная правка блока: локальный индекс + новый ID.
// Правки применяются в порядке постановки; поздняя правка той же ячейки
// в пределах одного flush перекрывает раннюю.
type PendingEdit struct {
	Index ChunkIndex
	ID    block.BlockID
}

// chunkInner — полезная нагрузка версионной ячейки: данные блоков и света
type chunkInner struct {
	pos    ChunkPos
	blocks ChunkData[block.BlockID]
	light  ChunkData[LightValue]
}

func cloneInner(inner *chunkInner) chunkInner {
	return chunkInner{
		pos:    inner.pos,
		blocks: inner.blocks.Clone(),
		light:  inner.light.Clone(),
	}
}

// Chunk — ячейка хранения одного чанка: версионные данные, очередь отложенных
// правок и edge-triggered сигнал загрязнения
type Chunk struct {
	pos  ChunkPos
	cell *VersionedCell[chunkInner]

	mu    sync.Mutex
	queue []PendingEdit

	dirty           atomic.Bool
	wasEverModified atomic.Bool

	signal func(ChunkPos)
}

// NewChunk создаёт ячейку чанка. signal вызывается с позицией чанка ровно
// один раз на каждый переход очереди из пустого состояния в непустое и
// обязан не блокироваться.
func NewChunk(pos ChunkPos, blocks ChunkData[block.BlockID], light ChunkData[LightValue], signal func(ChunkPos)) *Chunk {
	return &Chunk{
		pos:    pos,
		cell:   NewVersionedCell(chunkInner{pos: pos, blocks: blocks, light: light}),
		signal: signal,
	}
}

// Pos возвращает позицию чанка
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// Snapshot возвращает read-only снимок данных чанка. Дешёвый вызов,
// никогда не блокируется. Снимок обязателен к Release.
func (c *Chunk) Snapshot() ChunkSnapshot {
	return ChunkSnapshot{snap: c.cell.Snapshot()}
}

// QueueEdit ставит правку в очередь. Неблокирующий и потокобезопасный вызов;
// первая правка в пустой очереди сигнализирует о загрязнении ровно один раз.
func (c *Chunk) QueueEdit(index ChunkIndex, id block.BlockID) {
	c.mu.Lock()
	c.queue = append(c.queue, PendingEdit{Index: index, ID: id})
	c.mu.Unlock()

	if !c.dirty.Swap(true) {
		c.signal(c.pos)
	}
}

// WasEverModified сообщает, применялась ли к чанку хоть одна правка
func (c *Chunk) WasEverModified() bool {
	return c.wasEverModified.Load()
}

// Flush применяет накопленные правки. Контракт единственного писателя:
// store не вызывает Flush конкурентно для одной ячейки.
//
// Возвращает признак реального изменения и набор граней, на которых правка
// коснулась индекса 0 или 31: соседи за этими гранями тоже требуют ремеша,
// их граничные поверхности могли открыться или закрыться.
func (c *Chunk) Flush() (changed bool, boundary FaceSet) {
	// Флаг снимается до разбора очереди: правки, успевшие встать после
	// этой точки, поднимут его снова и чанк попадёт в следующий тик.
	if !c.dirty.Swap(false) {
		return false, 0
	}

	c.mu.Lock()
	edits := c.queue
	c.queue = nil
	c.mu.Unlock()

	if len(edits) == 0 {
		return false, 0
	}

	c.cell.Update(cloneInner, func(inner *chunkInner) bool {
		changed, boundary = applyEdits(&inner.blocks, edits)
		return changed
	})

	if changed {
		c.wasEverModified.Store(true)
	}
	return changed, boundary
}

// applyEdits применяет правки к данным блоков в порядке FIFO, собирая
// флаги затронутых граней
func applyEdits(data *ChunkData[block.BlockID], edits []PendingEdit) (bool, FaceSet) {
	var changed bool
	var boundary FaceSet

	for _, edit := range edits {
		if !data.Set(edit.Index, edit.ID) {
			continue
		}
		changed = true

		if edit.Index[0] == 0 {
			boundary |= FaceNegX
		}
		if edit.Index[0] == MaxAxisIndex {
			boundary |= FacePosX
		}
		if edit.Index[1] == 0 {
			boundary |= FaceNegY
		}
		if edit.Index[1] == MaxAxisIndex {
			boundary |= FacePosY
		}
		if edit.Index[2] == 0 {
			boundary |= FaceNegZ
		}
		if edit.Index[2] == MaxAxisIndex {
			boundary |= FacePosZ
		}
	}
	return changed, boundary
}

// ChunkSnapshot — read-only снимок данных одного чанка
type ChunkSnapshot struct {
	snap *CellSnapshot[chunkInner]
}

// Pos возвращает позицию чанка
func (s ChunkSnapshot) Pos() ChunkPos {
	return s.snap.Value().pos
}

// Blocks возвращает данные блоков снимка
func (s ChunkSnapshot) Blocks() *ChunkData[block.BlockID] {
	return &s.snap.Value().blocks
}

// Light возвращает данные освещённости снимка
func (s ChunkSnapshot) Light() *ChunkData[LightValue] {
	return &s.snap.Value().light
}

// IsOrphaned сообщает, существует ли версия данных новее этого снимка
func (s ChunkSnapshot) IsOrphaned() bool {
	return s.snap.IsOrphaned()
}

// Release освобождает снимок
func (s ChunkSnapshot) Release() {
	s.snap.Release()
}
