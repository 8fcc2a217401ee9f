package mesher

import (
	"testing"

	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"

	_ "github.com/annel0/voxel-client/internal/world/block/implementations"
)

// buildNeighborhood собирает хранилище из 27 чанков: соседи — воздух,
// центр заполняется через fill (nil оставляет воздух)
func buildNeighborhood(t *testing.T, fill func(data *world.ChunkData[block.BlockID])) *NeighborhoodView {
	t.Helper()
	store := world.NewChunkStore(nil)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				data := world.Homogeneous(block.AirBlockID)
				if dx == 0 && dy == 0 && dz == 0 && fill != nil {
					fill(&data)
				}
				pos := world.ChunkPos{X: dx, Y: dy, Z: dz}
				if _, err := store.Load(pos, data, world.Homogeneous(world.FullSkyLight)); err != nil {
					t.Fatalf("Загрузка %v: %v", pos, err)
				}
			}
		}
	}

	view := LockNeighborhood(store, world.ChunkPos{})
	if view == nil {
		t.Fatal("Полная окрестность обязана блокироваться")
	}
	t.Cleanup(view.Release)
	return view
}

func TestNeedsFaceTable(t *testing.T) {
	cases := []struct {
		name     string
		cur      block.BlockID
		neighbor block.BlockID
		want     bool
	}{
		{"камень к воздуху", block.StoneBlockID, block.AirBlockID, true},
		{"воздух к камню", block.AirBlockID, block.StoneBlockID, false},
		{"вода к воде", block.WaterBlockID, block.WaterBlockID, false},
		{"вода к камню", block.WaterBlockID, block.StoneBlockID, false},
		{"камень к воде", block.StoneBlockID, block.WaterBlockID, true},
		{"вода к воздуху", block.WaterBlockID, block.AirBlockID, true},
		{"камень к камню", block.StoneBlockID, block.StoneBlockID, false},
		{"трава-крест к воздуху", block.TallGrassBlockID, block.AirBlockID, false},
		{"камень к кресту", block.StoneBlockID, block.TallGrassBlockID, true},
	}

	for _, tc := range cases {
		if got := needsFace(tc.cur, tc.neighbor); got != tc.want {
			t.Errorf("%s: ожидалось %v, получено %v", tc.name, tc.want, got)
		}
	}
}

func TestAOValue(t *testing.T) {
	// Оба ребра заняты — угол полностью скрыт независимо от диагонали
	if aoValue(true, false, true) != 0 || aoValue(true, true, true) != 0 {
		t.Error("Два занятых ребра обязаны давать AO=0")
	}
	if aoValue(false, false, false) != 3 {
		t.Error("Пустое окружение обязано давать AO=3")
	}
	if aoValue(true, false, false) != 2 || aoValue(false, false, true) != 2 {
		t.Error("Одно занятое ребро обязано давать AO=2")
	}
	if aoValue(false, true, false) != 2 {
		t.Error("Одна занятая диагональ обязана давать AO=2")
	}
	if aoValue(true, true, false) != 1 {
		t.Error("Ребро с диагональю обязаны давать AO=1")
	}
}

func TestFaceAOSymmetry(t *testing.T) {
	// Одиночный куб в пустоте: у всех граней все углы полностью открыты
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{16, 16, 16}, block.StoneBlockID)
	})
	ctx := NewMeshContext(view, SimpleLight{})

	EnumerateSides(func(side Side) {
		ao := ctx.faceAO(16, 16, 16, side)
		for _, shift := range []uint8{aoShiftNegNeg, aoShiftNegPos, aoShiftPosNeg, aoShiftPosPos} {
			if ao.Corner(shift) != 3 {
				t.Errorf("Грань %d: открытый угол обязан иметь AO=3, получено %d", side, ao.Corner(shift))
			}
		}
	})
}

func TestFaceAOOccludedCorner(t *testing.T) {
	// Два рёберных соседа над верхней гранью прячут общий угол
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{16, 16, 16}, block.StoneBlockID)
		// Верхняя грань: касательная плоскость на y=17, u→Z, v→X
		data.Set(world.ChunkIndex{16, 17, 17}, block.StoneBlockID) // u=+1
		data.Set(world.ChunkIndex{17, 17, 16}, block.StoneBlockID) // v=+1
	})
	ctx := NewMeshContext(view, SimpleLight{})

	ao := ctx.faceAO(16, 16, 16, SideTop)
	if got := ao.Corner(aoShiftPosPos); got != 0 {
		t.Errorf("Угол с двумя занятыми рёбрами обязан иметь AO=0, получено %d", got)
	}
	if got := ao.Corner(aoShiftNegNeg); got != 3 {
		t.Errorf("Противоположный угол обязан остаться открытым, получено %d", got)
	}
}

func TestLiquidDoesNotOccludeAO(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{16, 16, 16}, block.StoneBlockID)
		data.Set(world.ChunkIndex{16, 17, 17}, block.WaterBlockID)
		data.Set(world.ChunkIndex{17, 17, 16}, block.WaterBlockID)
	})
	ctx := NewMeshContext(view, SimpleLight{})

	ao := ctx.faceAO(16, 16, 16, SideTop)
	if got := ao.Corner(aoShiftPosPos); got != 3 {
		t.Errorf("Жидкость не затеняет: ожидалось AO=3, получено %d", got)
	}
}

func TestMeshSingleCube(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{5, 5, 5}, block.StoneBlockID)
	})

	// Оба режима дают одинаковую геометрию для одиночного куба
	for _, mode := range []Mode{ModeCull, ModeGreedy} {
		mesh := NewMeshContext(view, SimpleLight{}).Mesh(mode)
		if len(mesh.Vertices) != 24 || len(mesh.Indices) != 36 {
			t.Errorf("Режим %s: 6 граней = 24 вершины и 36 индексов, получено %d/%d",
				mode, len(mesh.Vertices), len(mesh.Indices))
		}
	}
}

func TestGreedyMergesAdjacentCubes(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{5, 5, 5}, block.StoneBlockID)
		data.Set(world.ChunkIndex{6, 5, 5}, block.StoneBlockID)
	})

	mesh := NewMeshContext(view, SimpleLight{}).Mesh(ModeGreedy)
	// Две примыкающие грани скрыты, остальные сливаются в 6 квадов
	if len(mesh.Indices) != 36 {
		t.Errorf("Два слитых куба: ожидалось 6 квадов (36 индексов), получено %d", len(mesh.Indices))
	}
}

func TestCullHidesSharedFaces(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{5, 5, 5}, block.StoneBlockID)
		data.Set(world.ChunkIndex{6, 5, 5}, block.StoneBlockID)
	})

	mesh := NewMeshContext(view, SimpleLight{}).Mesh(ModeCull)
	// 12 граней минус 2 скрытые между кубами
	if len(mesh.Indices) != 60 {
		t.Errorf("Два куба без слияния: ожидалось 10 квадов (60 индексов), получено %d", len(mesh.Indices))
	}
}

func TestGreedyMergesFullLayer(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		for x := 0; x < world.ChunkSize; x++ {
			for z := 0; z < world.ChunkSize; z++ {
				data.Set(world.ChunkIndex{uint16(x), 0, uint16(z)}, block.StoneBlockID)
			}
		}
	})

	mesh := NewMeshContext(view, SimpleLight{}).Mesh(ModeGreedy)
	// Слой 32×32: верх и низ по одному кваду, четыре боковые полосы 32×1
	if len(mesh.Indices) != 36 {
		t.Errorf("Сплошной слой: ожидалось 6 квадов (36 индексов), получено %d", len(mesh.Indices))
	}
}

func TestCrossBlockGeometry(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{10, 10, 10}, block.TallGrassBlockID)
	})

	mesh := NewMeshContext(view, SimpleLight{}).Mesh(ModeGreedy)
	// Крест: две плоскости по 4 вершины, видимые с обеих сторон
	if len(mesh.Vertices) != 8 {
		t.Errorf("Крест: ожидалось 8 вершин, получено %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 24 {
		t.Errorf("Крест: ожидалось 24 индекса, получено %d", len(mesh.Indices))
	}

	// Вершины утоплены внутрь ячейки, не на границе
	for _, v := range mesh.Vertices {
		u := v.Unpack()
		if u.Pos[0]%VertexScale == 0 && u.Pos[2]%VertexScale == 0 {
			t.Error("Горизонтальные координаты креста обязаны быть утоплены внутрь ячейки")
			break
		}
	}
}

func TestEmptyChunkEmptyMesh(t *testing.T) {
	view := buildNeighborhood(t, nil)

	mesh := NewMeshContext(view, SimpleLight{}).Mesh(ModeGreedy)
	if !mesh.IsEmpty() {
		t.Errorf("Пустой чанк обязан давать пустой меш, получено %d индексов", len(mesh.Indices))
	}
}

func TestWaterSurfaceMeshed(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{8, 8, 8}, block.WaterBlockID)
	})

	mesh := NewMeshContext(view, SimpleLight{}).Mesh(ModeCull)
	// Вода в воздухе рисует все шесть граней
	if len(mesh.Indices) != 36 {
		t.Errorf("Одиночная вода: ожидалось 6 граней, получено %d индексов", len(mesh.Indices))
	}
}

func TestMeshVertexLightSampled(t *testing.T) {
	view := buildNeighborhood(t, func(data *world.ChunkData[block.BlockID]) {
		data.Set(world.ChunkIndex{5, 5, 5}, block.StoneBlockID)
	})

	mesh := NewMeshContext(view, SmoothLight{}).Mesh(ModeGreedy)
	for _, v := range mesh.Vertices {
		if u := v.Unpack(); u.Sky != 15 {
			t.Errorf("Под полным небом каждая вершина обязана иметь sky=15, получено %d", u.Sky)
		}
	}
}

// homogeneousView строит окрестность, где центр и все соседи гомогенны
func homogeneousView(t *testing.T, center, around block.BlockID) *NeighborhoodView {
	t.Helper()
	store := world.NewChunkStore(nil)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				id := around
				if dx == 0 && dy == 0 && dz == 0 {
					id = center
				}
				pos := world.ChunkPos{X: dx, Y: dy, Z: dz}
				if _, err := store.Load(pos, world.Homogeneous(id), world.Homogeneous(world.FullSkyLight)); err != nil {
					t.Fatalf("Загрузка %v: %v", pos, err)
				}
			}
		}
	}

	view := LockNeighborhood(store, world.ChunkPos{})
	if view == nil {
		t.Fatal("Полная окрестность обязана блокироваться")
	}
	t.Cleanup(view.Release)
	return view
}

func TestHomogeneousSkippable(t *testing.T) {
	cases := []struct {
		name   string
		center block.BlockID
		around block.BlockID
		want   bool
	}{
		{"воздух в воздухе", block.AirBlockID, block.AirBlockID, true},
		{"камень в камне", block.StoneBlockID, block.StoneBlockID, true},
		{"вода в воде", block.WaterBlockID, block.WaterBlockID, true},
		{"камень в воздухе", block.StoneBlockID, block.AirBlockID, false},
		{"трава (крест) в воздухе", block.TallGrassBlockID, block.AirBlockID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := homogeneousView(t, tc.center, tc.around)
			if got := homogeneousSkippable(view, tc.center); got != tc.want {
				t.Errorf("homogeneousSkippable(%s) = %v, ожидалось %v", tc.name, got, tc.want)
			}
		})
	}
}

// sideCoverage — покрытие одной грани чанка квадами меша
type sideCoverage struct {
	area                   int
	minU, maxU, minV, maxV int
	plane                  int
}

// coverageBySide раскладывает меш по граням (ось+знак) и суммирует площадь
// квадов в распакованных координатах
func coverageBySide(t *testing.T, mesh TerrainMesh) map[[2]int]*sideCoverage {
	t.Helper()
	if len(mesh.Vertices)%4 != 0 {
		t.Fatalf("Число вершин %d не кратно четырём", len(mesh.Vertices))
	}

	sides := make(map[[2]int]*sideCoverage)
	for q := 0; q < len(mesh.Vertices); q += 4 {
		first := mesh.Vertices[q].Unpack()
		axis := first.Axis
		sign := 0
		if first.Sign {
			sign = 1
		}
		uAxis, vAxis := (axis+1)%3, (axis+2)%3

		var minP, maxP, minU, maxU, minV, maxV int
		for i := 0; i < 4; i++ {
			u := mesh.Vertices[q+i].Unpack()
			p, cu, cv := int(u.Pos[axis]), int(u.Pos[uAxis]), int(u.Pos[vAxis])
			if i == 0 {
				minP, maxP, minU, maxU, minV, maxV = p, p, cu, cu, cv, cv
				continue
			}
			minP, maxP = min(minP, p), max(maxP, p)
			minU, maxU = min(minU, cu), max(maxU, cu)
			minV, maxV = min(minV, cv), max(maxV, cv)
		}
		if minP != maxP {
			t.Fatalf("Квад грани (%d,%d) не лежит в одной плоскости: %d..%d", axis, sign, minP, maxP)
		}

		cov := sides[[2]int{axis, sign}]
		if cov == nil {
			cov = &sideCoverage{minU: minU, maxU: maxU, minV: minV, maxV: maxV, plane: minP}
			sides[[2]int{axis, sign}] = cov
		}
		if cov.plane != minP {
			t.Fatalf("Грань (%d,%d): квады в разных плоскостях %d и %d", axis, sign, cov.plane, minP)
		}
		cov.area += (maxU - minU) * (maxV - minV)
		cov.minU, cov.maxU = min(cov.minU, minU), max(cov.maxU, maxU)
		cov.minV, cov.maxV = min(cov.minV, minV), max(cov.maxV, maxV)
	}
	return sides
}

func TestFullChunkGreedyCullEquivalence(t *testing.T) {
	view := homogeneousView(t, block.StoneBlockID, block.AirBlockID)

	greedy := NewMeshContext(view, SimpleLight{}).Mesh(ModeGreedy)
	cull := NewMeshContext(view, SimpleLight{}).Mesh(ModeCull)

	if len(greedy.Indices) != 6*6 {
		t.Errorf("Сплошной чанк greedy: ожидалось 6 квадов (36 индексов), получено %d", len(greedy.Indices))
	}
	if len(cull.Indices) != 6*world.ChunkArea*6 {
		t.Errorf("Сплошной чанк cull: ожидалось %d индексов, получено %d", 6*world.ChunkArea*6, len(cull.Indices))
	}

	edge := world.ChunkSize * VertexScale
	greedySides := coverageBySide(t, greedy)
	cullSides := coverageBySide(t, cull)

	if len(greedySides) != 6 || len(cullSides) != 6 {
		t.Fatalf("Оба режима обязаны покрыть все 6 граней, получено %d и %d", len(greedySides), len(cullSides))
	}

	for key, g := range greedySides {
		c := cullSides[key]
		if c == nil {
			t.Fatalf("Cull не покрыл грань %v", key)
		}

		// Оба режима покрывают одну и ту же площадь в тех же координатах
		if g.area != edge*edge || c.area != edge*edge {
			t.Errorf("Грань %v: площадь greedy %d, cull %d, ожидалось %d", key, g.area, c.area, edge*edge)
		}
		if g.minU != 0 || g.minV != 0 || g.maxU != edge || g.maxV != edge {
			t.Errorf("Грань %v greedy: границы (%d..%d, %d..%d), ожидалось (0..%d)", key, g.minU, g.maxU, g.minV, g.maxV, edge)
		}
		if c.minU != 0 || c.minV != 0 || c.maxU != edge || c.maxV != edge {
			t.Errorf("Грань %v cull: границы (%d..%d, %d..%d), ожидалось (0..%d)", key, c.minU, c.maxU, c.minV, c.maxV, edge)
		}

		// Положительная грань лежит в плоскости дальнего края, отрицательная — в нулевой
		wantPlane := 0
		if key[1] == 0 {
			wantPlane = edge
		}
		if g.plane != wantPlane || c.plane != wantPlane {
			t.Errorf("Грань %v: плоскость greedy %d, cull %d, ожидалось %d", key, g.plane, c.plane, wantPlane)
		}
	}
}
