package world

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/voxel-client/internal/eventbus"
	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/world/block"
)

// ErrChunkNotLoaded возвращается при правке блока в незагруженном чанке.
// Обычная ситуация во время подгрузки мира, ошибку нужно обрабатывать, а не паниковать.
var ErrChunkNotLoaded = errors.New("чанк не загружен")

// dirtyQueue — FIFO позиций грязных чанков. Благодаря edge-triggered
// сигналу каждый грязный чанк попадает сюда не больше одного раза за тик,
// поэтому очередь не нуждается в ёмкости и push никогда не блокируется.
type dirtyQueue struct {
	mu        sync.Mutex
	positions []ChunkPos
}

func (q *dirtyQueue) push(pos ChunkPos) {
	q.mu.Lock()
	q.positions = append(q.positions, pos)
	q.mu.Unlock()
}

// drain забирает накопленные позиции, оставляя очередь пустой
func (q *dirtyQueue) drain() []ChunkPos {
	q.mu.Lock()
	positions := q.positions
	q.positions = nil
	q.mu.Unlock()
	return positions
}

// ChunkStore хранит загруженные чанки и служит единственной точкой записи.
// Чтение снапшотов lock-free, правки сериализуются через очереди чанков.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*Chunk

	dirty   dirtyQueue
	bus     eventbus.EventBus
	metrics *storeMetrics
}

// NewChunkStore создаёт пустое хранилище. Шина может быть nil —
// тогда события жизненного цикла не публикуются.
func NewChunkStore(bus eventbus.EventBus) *ChunkStore {
	return &ChunkStore{
		chunks:  make(map[ChunkPos]*Chunk),
		bus:     bus,
		metrics: newStoreMetrics(),
	}
}

// Load вставляет чанк с готовыми данными. Повторная загрузка той же
// позиции — ошибка вызывающего.
func (s *ChunkStore) Load(pos ChunkPos, blocks ChunkData[block.BlockID], light ChunkData[LightValue]) (*Chunk, error) {
	s.mu.Lock()
	if _, exists := s.chunks[pos]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("чанк %v уже загружен", pos)
	}
	c := NewChunk(pos, blocks, light, s.dirty.push)
	s.chunks[pos] = c
	s.mu.Unlock()

	s.metrics.chunksLoaded.Inc()
	s.publish(EventChunkLoaded, pos)
	return c, nil
}

// Unload убирает чанк из хранилища. Живые снапшоты остаются валидными
// до своего Release — ячейка просто перестаёт быть достижимой.
func (s *ChunkStore) Unload(pos ChunkPos) {
	s.mu.Lock()
	c, exists := s.chunks[pos]
	delete(s.chunks, pos)
	s.mu.Unlock()

	if exists {
		if c.WasEverModified() {
			logging.Debug("🧹 Выгружен изменённый чанк %v", pos)
		}
		s.metrics.chunksLoaded.Dec()
		s.publish(EventChunkUnloaded, pos)
	}
}

// Chunk возвращает загруженный чанк либо nil.
func (s *ChunkStore) Chunk(pos ChunkPos) *Chunk {
	s.mu.RLock()
	c := s.chunks[pos]
	s.mu.RUnlock()
	return c
}

// Len — число загруженных чанков.
func (s *ChunkStore) Len() int {
	s.mu.RLock()
	n := len(s.chunks)
	s.mu.RUnlock()
	return n
}

// ForEach вызывает fn для каждого загруженного чанка под RLock.
// fn не должна трогать хранилище.
func (s *ChunkStore) ForEach(fn func(*Chunk)) {
	s.mu.RLock()
	for _, c := range s.chunks {
		fn(c)
	}
	s.mu.RUnlock()
}

// SetBlock ставит правку блока в очередь его чанка. Сама правка
// применится на следующем FlushAll.
func (s *ChunkStore) SetBlock(pos BlockPos, id block.BlockID) error {
	chunkPos, local := pos.ChunkAndLocal()
	c := s.Chunk(chunkPos)
	if c == nil {
		return fmt.Errorf("set block %v: %w", pos, ErrChunkNotLoaded)
	}
	c.QueueEdit(local, id)
	s.metrics.editsQueued.Inc()
	return nil
}

// GetBlock читает блок через свежий снапшот. Для массовых чтений
// берите снапшот один раз, это лишь удобный путь для точечных запросов.
func (s *ChunkStore) GetBlock(pos BlockPos) (block.BlockID, error) {
	chunkPos, local := pos.ChunkAndLocal()
	c := s.Chunk(chunkPos)
	if c == nil {
		return 0, fmt.Errorf("get block %v: %w", pos, ErrChunkNotLoaded)
	}
	snap := c.Snapshot()
	id := snap.Blocks().Get(local)
	snap.Release()
	return id, nil
}

// FlushAll применяет накопленные правки всех грязных чанков и возвращает
// множество позиций, которым нужен ремеш. Чанк с изменением на грани
// добавляет в множество и соседа через эту грань, если тот загружен.
func (s *ChunkStore) FlushAll() map[ChunkPos]struct{} {
	start := time.Now()
	remesh := make(map[ChunkPos]struct{})
	defer func() {
		s.metrics.flushDuration.Observe(time.Since(start).Seconds())
		s.metrics.remeshTotal.Add(float64(len(remesh)))
	}()

	for _, pos := range s.dirty.drain() {
		c := s.Chunk(pos)
		if c == nil {
			// Чанк выгрузили раньше, чем дошли до флаша
			continue
		}
		changed, boundary := c.Flush()
		if !changed {
			continue
		}
		remesh[pos] = struct{}{}
		boundary.ForEachNeighbor(pos, func(n ChunkPos) {
			if s.Chunk(n) != nil {
				remesh[n] = struct{}{}
			}
		})
		s.publish(EventChunkModified, pos)
	}
	return remesh
}

func (s *ChunkStore) publish(eventType string, pos ChunkPos) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), encodeChunkEvent(eventType, pos)); err != nil {
		logging.Warn("⚠️ Не удалось опубликовать %s для %v: %v", eventType, pos, err)
	}
}
