package mesher

import (
	"github.com/annel0/voxel-client/internal/world"
)

// MeshTracker ведёт учёт, какие чанки готовы к мешингу. Чанк можно
// мешить только когда загружены все 26 соседей, поэтому реагировать на
// загрузку напрямую нельзя — трекер накапливает ограничения и отдаёт
// позиции, у которых данных уже достаточно.
//
// Инварианты:
//   - незагруженный чанк никогда не числится в constrainedBy;
//   - загруженный чанк никогда не числится в constraining;
//   - для каждого Y из constraining[X] обязано выполняться X ∈ constrainedBy[Y].
//
// Трекер не потокобезопасен: им владеет главный цикл клиента.
type MeshTracker struct {
	// constraining[X] — загруженные чанки, которых сдерживает незагруженный X
	constraining map[world.ChunkPos]map[world.ChunkPos]struct{}
	// constrainedBy[X] — незагруженные соседи, сдерживающие загруженный X
	constrainedBy map[world.ChunkPos]map[world.ChunkPos]struct{}

	needsMesh map[world.ChunkPos]struct{}
	loaded    map[world.ChunkPos]struct{}
}

// NewMeshTracker создаёт пустой трекер
func NewMeshTracker() *MeshTracker {
	return &MeshTracker{
		constraining:  make(map[world.ChunkPos]map[world.ChunkPos]struct{}),
		constrainedBy: make(map[world.ChunkPos]map[world.ChunkPos]struct{}),
		needsMesh:     make(map[world.ChunkPos]struct{}),
		loaded:        make(map[world.ChunkPos]struct{}),
	}
}

func forEachNeighbor26(center world.ChunkPos, fn func(world.ChunkPos)) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				fn(center.Offset(dx, dy, dz))
			}
		}
	}
}

func addConstraint(m map[world.ChunkPos]map[world.ChunkPos]struct{}, key, val world.ChunkPos) {
	set, ok := m[key]
	if !ok {
		set = make(map[world.ChunkPos]struct{})
		m[key] = set
	}
	set[val] = struct{}{}
}

// constrainSelf регистрирует незагруженных соседей center как его ограничители
func (t *MeshTracker) constrainSelf(center world.ChunkPos) {
	forEachNeighbor26(center, func(neighbor world.ChunkPos) {
		if _, ok := t.loaded[neighbor]; !ok {
			addConstraint(t.constraining, neighbor, center)
			addConstraint(t.constrainedBy, center, neighbor)
		}
	})
}

// constrainNeighbors: после выгрузки center все его загруженные соседи
// снова сдержаны им и выбывают из очереди мешинга
func (t *MeshTracker) constrainNeighbors(center world.ChunkPos) {
	forEachNeighbor26(center, func(neighbor world.ChunkPos) {
		if _, ok := t.loaded[neighbor]; ok {
			addConstraint(t.constraining, center, neighbor)
			addConstraint(t.constrainedBy, neighbor, center)
			delete(t.needsMesh, neighbor)
		}
	})
}

// unconstrainSelf снимает все входящие ограничения выгружаемого center
func (t *MeshTracker) unconstrainSelf(center world.ChunkPos) {
	constrainers, ok := t.constrainedBy[center]
	if !ok {
		return
	}
	delete(t.constrainedBy, center)

	for constrainer := range constrainers {
		set := t.constraining[constrainer]
		delete(set, center)
		if len(set) == 0 {
			delete(t.constraining, constrainer)
		}
	}
}

// unconstrainNeighbors: center загрузился — соседи, которых он сдерживал,
// могли стать полностью свободными и тогда попадают в очередь
func (t *MeshTracker) unconstrainNeighbors(center world.ChunkPos) {
	constraining, ok := t.constraining[center]
	if !ok {
		return
	}
	delete(t.constraining, center)

	for neighbor := range constraining {
		set := t.constrainedBy[neighbor]
		delete(set, center)
		if len(set) == 0 {
			delete(t.constrainedBy, neighbor)
			t.needsMesh[neighbor] = struct{}{}
		}
	}
}

// AddChunk сообщает трекеру о загрузке чанка
func (t *MeshTracker) AddChunk(pos world.ChunkPos) {
	if _, ok := t.loaded[pos]; ok {
		return
	}
	t.loaded[pos] = struct{}{}

	t.constrainSelf(pos)
	t.unconstrainNeighbors(pos)

	// Все соседи могли быть уже загружены — тогда чанк сразу свободен
	t.RequestMesh(pos)
}

// RemoveChunk сообщает трекеру о выгрузке чанка
func (t *MeshTracker) RemoveChunk(pos world.ChunkPos) {
	if _, ok := t.loaded[pos]; !ok {
		return
	}
	delete(t.loaded, pos)
	delete(t.needsMesh, pos)

	t.unconstrainSelf(pos)
	t.constrainNeighbors(pos)
}

// RequestMesh ставит чанк в очередь, если он загружен и ничем не сдержан.
// Сдержанный чанк попадёт в очередь сам, когда загрузится последний сосед.
func (t *MeshTracker) RequestMesh(pos world.ChunkPos) {
	_, constrained := t.constrainedBy[pos]
	_, isLoaded := t.loaded[pos]
	if !constrained && isLoaded {
		t.needsMesh[pos] = struct{}{}
	}
}

// MeshFailed возвращает упавшую задачу в очередь. К этому моменту чанк
// или его соседи могли выгрузиться — тогда вернётся он позже, через
// обычный путь ограничений.
func (t *MeshTracker) MeshFailed(pos world.ChunkPos) {
	if _, ok := t.loaded[pos]; !ok {
		return
	}
	t.constrainSelf(pos)
	t.RequestMesh(pos)
}

// Next отдаёт следующую позицию, готовую к мешингу, либо false
func (t *MeshTracker) Next() (world.ChunkPos, bool) {
	for pos := range t.needsMesh {
		delete(t.needsMesh, pos)
		return pos, true
	}
	return world.ChunkPos{}, false
}

// Pending — размер очереди мешинга
func (t *MeshTracker) Pending() int {
	return len(t.needsMesh)
}
