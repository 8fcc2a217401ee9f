package mesher

import (
	"fmt"

	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"
)

// NeighborhoodView держит снапшоты центрального чанка и всех 26 соседей.
// Пока вью живо, мешер читает согласованные данные независимо от
// параллельных правок; после работы обязателен Release.
type NeighborhoodView struct {
	center world.ChunkPos
	chunks [27]world.ChunkSnapshot
}

// LockNeighborhood снимает снапшоты окрестности 3×3×3 вокруг center.
// Возвращает nil, если хоть один сосед не загружен: мешер не имеет права
// гадать о содержимом незагруженных чанков.
func LockNeighborhood(store *world.ChunkStore, center world.ChunkPos) *NeighborhoodView {
	view := &NeighborhoodView{center: center}

	i := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				c := store.Chunk(center.Offset(dx, dy, dz))
				if c == nil {
					// Откатываем уже взятые снапшоты
					for j := 0; j < i; j++ {
						view.chunks[j].Release()
					}
					return nil
				}
				view.chunks[i] = c.Snapshot()
				i++
			}
		}
	}
	return view
}

// resolveAxis переводит координату, возможно выходящую за пределы чанка,
// в пару (слот соседа по оси, локальная координата). Единственное место,
// где происходит пересечение границ чанков. Координата за пределами
// окрестности 3×3×3 — ошибка вызывающего.
func resolveAxis(n int) (slot, local int) {
	switch {
	case n < -world.ChunkSize || n >= 2*world.ChunkSize:
		panic(fmt.Sprintf("координата %d вне окрестности 3×3×3 [-32, 64)", n))
	case n < 0:
		return 0, n + world.ChunkSize
	case n >= world.ChunkSize:
		return 2, n - world.ChunkSize
	default:
		return 1, n
	}
}

// slotIndex собирает индекс снапшота из трёх осевых слотов
func slotIndex(sx, sy, sz int) int {
	return 9*sx + 3*sy + sz
}

// Block возвращает блок по локальной координате центрального чанка;
// координаты от -1 до ChunkSize включительно попадают в соседей.
func (v *NeighborhoodView) Block(x, y, z int) block.BlockID {
	sx, mx := resolveAxis(x)
	sy, my := resolveAxis(y)
	sz, mz := resolveAxis(z)
	idx := world.ChunkIndex{uint16(mx), uint16(my), uint16(mz)}
	return v.chunks[slotIndex(sx, sy, sz)].Blocks().Get(idx)
}

// Light возвращает значение света аналогично Block
func (v *NeighborhoodView) Light(x, y, z int) world.LightValue {
	sx, mx := resolveAxis(x)
	sy, my := resolveAxis(y)
	sz, mz := resolveAxis(z)
	idx := world.ChunkIndex{uint16(mx), uint16(my), uint16(mz)}
	return v.chunks[slotIndex(sx, sy, sz)].Light().Get(idx)
}

// Center — позиция центрального чанка
func (v *NeighborhoodView) Center() world.ChunkPos {
	return v.center
}

// CenterHomogeneous возвращает блок и true, если весь центральный чанк
// гомогенный — дешёвый шорткат перед полным мешингом.
func (v *NeighborhoodView) CenterHomogeneous() (block.BlockID, bool) {
	return v.chunks[slotIndex(1, 1, 1)].Blocks().IsHomogeneous()
}

// FaceNeighborHomogeneous возвращает блок и true, если сосед по грани side
// целиком гомогенный.
func (v *NeighborhoodView) FaceNeighborHomogeneous(side Side) (block.BlockID, bool) {
	n := side.Normal()
	return v.chunks[slotIndex(n.X+1, n.Y+1, n.Z+1)].Blocks().IsHomogeneous()
}

// IsStale сообщает, что какой-то из снапшотов уже вытеснен новой версией.
// Меш из устаревших данных всё равно валиден, просто скоро будет заменён.
func (v *NeighborhoodView) IsStale() bool {
	for i := range v.chunks {
		if v.chunks[i].IsOrphaned() {
			return true
		}
	}
	return false
}

// Release отпускает все снапшоты. Повторный вызов безопасен.
func (v *NeighborhoodView) Release() {
	for i := range v.chunks {
		v.chunks[i].Release()
	}
}
