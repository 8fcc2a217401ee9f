// Пакет mesher превращает данные чанков в треугольные меши поверхности.
// Вход — согласованная окрестность снапшотов 3×3×3, выход — упакованный
// TerrainMesh, готовый к загрузке на GPU.
package mesher

import (
	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"
)

// Mode — алгоритм обхода граней
type Mode string

const (
	// ModeCull — по граням каждой ячейки отдельно, без слияния квадов
	ModeCull Mode = "cull"
	// ModeGreedy — жадное слияние граней с одинаковой сигнатурой
	ModeGreedy Mode = "greedy"
)

// MeshContext держит всё состояние мешинга одного чанка. Один контекст —
// один чанк — один вызов: переиспользовать нельзя.
type MeshContext struct {
	view    *NeighborhoodView
	sampler LightSampler
	builder MeshBuilder
	slice   []VoxelFace
}

// NewMeshContext создаёт контекст над заблокированной окрестностью.
// Окрестность остаётся во владении вызывающего.
func NewMeshContext(view *NeighborhoodView, sampler LightSampler) *MeshContext {
	return &MeshContext{
		view:    view,
		sampler: sampler,
		slice:   make([]VoxelFace, world.ChunkArea),
	}
}

// Mesh запускает выбранный алгоритм и возвращает готовый меш
func (c *MeshContext) Mesh(mode Mode) TerrainMesh {
	if mode == ModeCull {
		return c.meshCull()
	}
	return c.meshGreedy()
}

// needsFace решает, нужна ли грань блока cur в сторону соседа neighbor.
// Крестовые блоки сюда не попадают: у них отдельный проход без граней.
func needsFace(cur, neighbor block.BlockID) bool {
	curB := block.MustGet(cur)
	otherB := block.MustGet(neighbor)

	curSolid := curB.MeshType() == block.MeshFullCube
	otherSolid := otherB.MeshType() == block.MeshFullCube

	switch {
	case curB.Liquid():
		// Жидкости рисуют грань только к не-кубу и не-жидкости
		return !otherSolid && !otherB.Liquid()
	case curSolid:
		// Твёрдые кубы — к любому не-кубу и к жидкостям
		return !otherSolid || otherB.Liquid()
	default:
		return false
	}
}

// contributesAO: затеняет ли блок соседний угол
func (c *MeshContext) contributesAO(x, y, z int) bool {
	return block.MustGet(c.view.Block(x, y, z)).OpaqueForAO()
}

// faceAO сэмплирует восемь соседей в касательной плоскости грани и
// сворачивает их в четыре 2-битных угловых значения
func (c *MeshContext) faceAO(x, y, z int, side Side) FaceAO {
	sample := func(u, v int) bool {
		off := side.UVLToXYZ(u, v, 1)
		return c.contributesAO(x+off.X, y+off.Y, z+off.Z)
	}

	negNeg := sample(-1, -1)
	negCen := sample(-1, 0)
	negPos := sample(-1, 1)
	posNeg := sample(1, -1)
	posCen := sample(1, 0)
	posPos := sample(1, 1)
	cenNeg := sample(0, -1)
	cenPos := sample(0, 1)

	return FaceAO(aoValue(cenPos, posPos, posCen))<<aoShiftPosPos |
		FaceAO(aoValue(posCen, posNeg, cenNeg))<<aoShiftPosNeg |
		FaceAO(aoValue(cenNeg, negNeg, negCen))<<aoShiftNegNeg |
		FaceAO(aoValue(negCen, negPos, cenPos))<<aoShiftNegPos
}

// makeFace строит грань для ячейки: AO и свет считаются только когда
// грань действительно видна
func (c *MeshContext) makeFace(x, y, z int, side Side, id block.BlockID) VoxelFace {
	return VoxelFace{
		AO:    c.faceAO(x, y, z, side),
		Light: c.sampler.FaceLight(c.view, x, y, z, side),
		ID:    id,
	}
}

// sliceIdx — индекс ячейки плоской маски среза по 2D координате
func sliceIdx(u, v int) int {
	return world.ChunkSize*u + v
}

// meshSlice прогоняет все слои чанка вдоль нормали side: заполняет маску
// видимых граней слоя и сливает её в квады
func (c *MeshContext) meshSlice(side Side, coord func(layer, u, v int) (int, int, int)) {
	n := side.Normal()
	for layer := 0; layer < world.ChunkSize; layer++ {
		for u := 0; u < world.ChunkSize; u++ {
			for v := 0; v < world.ChunkSize; v++ {
				x, y, z := coord(layer, u, v)
				cur := c.view.Block(x, y, z)
				neighbor := c.view.Block(x+n.X, y+n.Y, z+n.Z)

				if needsFace(cur, neighbor) {
					c.slice[sliceIdx(u, v)] = c.makeFace(x, y, z, side, cur)
				} else {
					c.slice[sliceIdx(u, v)] = VoxelFace{Visited: true}
				}
			}
		}

		c.submitQuads(side, func(u, v int) (int, int, int) {
			return coord(layer, u, v)
		})
	}
}

// submitQuads жадно сливает маску текущего среза в квады: ширина растёт
// вправо по идентичной сигнатуре, затем высота вниз, пока совпадает весь ряд
func (c *MeshContext) submitQuads(side Side, coord func(u, v int) (int, int, int)) {
	for u := 0; u < world.ChunkSize; u++ {
		for v := 0; v < world.ChunkSize; v++ {
			cur := c.slice[sliceIdx(u, v)]
			if cur.Visited {
				continue
			}

			quad := VoxelQuad{AO: cur.AO, Light: cur.Light, ID: cur.ID, Width: 1, Height: 1}

			for u+quad.Width < world.ChunkSize &&
				cur.sameSignature(c.slice[sliceIdx(u+quad.Width, v)]) {
				quad.Width++
			}

		expand:
			for v+quad.Height < world.ChunkSize {
				for w := 0; w < quad.Width; w++ {
					if !cur.sameSignature(c.slice[sliceIdx(u+w, v+quad.Height)]) {
						break expand
					}
				}
				quad.Height++
			}

			for w := 0; w < quad.Width; w++ {
				for h := 0; h < quad.Height; h++ {
					c.slice[sliceIdx(u+w, v+h)].Visited = true
				}
			}

			x, y, z := coord(u, v)
			c.builder.AddQuad(quad, side, x, y, z)
		}
	}
}

// meshCross проходит чанк и добавляет крестовую растительность.
// Общий для обоих режимов.
func (c *MeshContext) meshCross() {
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			for y := 0; y < world.ChunkSize; y++ {
				id := c.view.Block(x, y, z)
				if block.MustGet(id).MeshType() == block.MeshCross {
					c.builder.AddCross(id, c.view.Light(x, y, z), x, y, z)
				}
			}
		}
	}
}

// meshGreedy — основной режим: кресты, затем шесть направлений срезами
func (c *MeshContext) meshGreedy() TerrainMesh {
	c.meshCross()

	c.meshSlice(SideRight, func(layer, u, v int) (int, int, int) { return layer, u, v })
	c.meshSlice(SideLeft, func(layer, u, v int) (int, int, int) { return layer, u, v })

	c.meshSlice(SideTop, func(layer, u, v int) (int, int, int) { return u, layer, v })
	c.meshSlice(SideBottom, func(layer, u, v int) (int, int, int) { return u, layer, v })

	c.meshSlice(SideFront, func(layer, u, v int) (int, int, int) { return u, v, layer })
	c.meshSlice(SideBack, func(layer, u, v int) (int, int, int) { return u, v, layer })

	return c.builder.Take()
}

// meshCull — простой режим: каждая видимая грань отдельным квадом 1×1.
// Медленнее на GPU, но удобен как эталон в тестах и при отладке.
func (c *MeshContext) meshCull() TerrainMesh {
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			for y := 0; y < world.ChunkSize; y++ {
				id := c.view.Block(x, y, z)
				behavior := block.MustGet(id)

				switch behavior.MeshType() {
				case block.MeshCross:
					c.builder.AddCross(id, c.view.Light(x, y, z), x, y, z)
				case block.MeshFullCube:
					cx, cy, cz := x, y, z
					EnumerateSides(func(side Side) {
						n := side.Normal()
						neighbor := c.view.Block(cx+n.X, cy+n.Y, cz+n.Z)
						if needsFace(id, neighbor) {
							face := c.makeFace(cx, cy, cz, side, id)
							c.builder.AddQuad(VoxelQuad{
								AO: face.AO, Light: face.Light, ID: face.ID,
								Width: 1, Height: 1,
							}, side, cx, cy, cz)
						}
					})
				}
			}
		}
	}
	return c.builder.Take()
}
