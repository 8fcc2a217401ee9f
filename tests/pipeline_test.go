package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-client/internal/eventbus"
	"github.com/annel0/voxel-client/internal/mesher"
	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"

	_ "github.com/annel0/voxel-client/internal/world/block/implementations"
)

// newPipeline собирает связку шина → хранилище → трекер, как в клиенте
func newPipeline(t *testing.T) (*world.ChunkStore, *mesher.MeshTracker) {
	t.Helper()
	bus := eventbus.NewMemoryBus()
	store := world.NewChunkStore(bus)
	tracker := mesher.NewMeshTracker()

	_, err := bus.Subscribe(context.Background(), eventbus.Filter{
		Types: []string{world.EventChunkLoaded, world.EventChunkUnloaded},
	}, func(_ context.Context, ev *eventbus.Envelope) {
		pos, err := world.DecodeChunkEvent(ev)
		require.NoError(t, err)
		switch ev.EventType {
		case world.EventChunkLoaded:
			tracker.AddChunk(pos)
		case world.EventChunkUnloaded:
			tracker.RemoveChunk(pos)
		}
	})
	require.NoError(t, err)
	return store, tracker
}

func loadAirCube(t *testing.T, store *world.ChunkStore, center world.ChunkPos) {
	t.Helper()
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				_, err := store.Load(center.Offset(dx, dy, dz),
					world.Homogeneous(block.AirBlockID), world.Homogeneous(world.FullSkyLight))
				require.NoError(t, err)
			}
		}
	}
}

func collectResults(t *testing.T, scheduler *mesher.Scheduler, want int) []mesher.CompletedMesh {
	t.Helper()
	var results []mesher.CompletedMesh
	deadline := time.After(5 * time.Second)
	for len(results) < want {
		select {
		case result := <-scheduler.Results():
			results = append(results, result)
		case <-deadline:
			t.Fatalf("Не дождались результатов: есть %d из %d", len(results), want)
		}
	}
	return results
}

// TestEditFlushMeshPipeline проверяет полный цикл: правка блока →
// флаш → постановка в очередь → мешинг в пуле воркеров → результат.
func TestEditFlushMeshPipeline(t *testing.T) {
	store, tracker := newPipeline(t)
	loadAirCube(t, store, world.ChunkPos{})

	scheduler := mesher.NewScheduler(store, tracker, mesher.SchedulerOptions{
		Workers:     2,
		JobsPerTick: 8,
		Mode:        mesher.ModeGreedy,
		Sampler:     mesher.SimpleLight{},
	})
	scheduler.Start()
	defer scheduler.Stop()

	// Центр гомогенно-воздушный: первый мешинг даёт пустой меш
	dispatched := scheduler.Tick()
	require.Equal(t, 1, dispatched, "готов обязан быть только центр")

	results := collectResults(t, scheduler, 1)
	assert.False(t, results[0].Failed)
	assert.True(t, results[0].Mesh.IsEmpty(), "воздушный чанк даёт пустой меш")

	// Ставим блок и прогоняем тик
	require.NoError(t, store.SetBlock(world.BlockPos{X: 5, Y: 5, Z: 5}, block.StoneBlockID))
	remesh := store.FlushAll()
	require.Contains(t, remesh, world.ChunkPos{})
	for pos := range remesh {
		tracker.RequestMesh(pos)
	}

	require.Equal(t, 1, scheduler.Tick())
	results = collectResults(t, scheduler, 1)
	require.False(t, results[0].Failed)
	assert.Equal(t, world.ChunkPos{}, results[0].Pos)
	assert.Len(t, results[0].Mesh.Vertices, 24, "одиночный куб — 24 вершины")
	assert.Len(t, results[0].Mesh.Indices, 36, "одиночный куб — 36 индексов")
}

// TestSchedulerReportsFailure: задача без полной окрестности обязана
// вернуться сообщением Failed, а не потеряться.
func TestSchedulerReportsFailure(t *testing.T) {
	store := world.NewChunkStore(nil)
	tracker := mesher.NewMeshTracker()

	// Трекер считает окрестность полной, но в хранилище нет угла
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				pos := world.ChunkPos{X: dx, Y: dy, Z: dz}
				tracker.AddChunk(pos)
				if dx == 1 && dy == 1 && dz == 1 {
					continue
				}
				_, err := store.Load(pos, world.Homogeneous(block.AirBlockID), world.Homogeneous(world.FullSkyLight))
				require.NoError(t, err)
			}
		}
	}

	scheduler := mesher.NewScheduler(store, tracker, mesher.SchedulerOptions{
		Workers: 1, JobsPerTick: 4, Mode: mesher.ModeGreedy, Sampler: mesher.SimpleLight{},
	})
	scheduler.Start()
	defer scheduler.Stop()

	require.Equal(t, 1, scheduler.Tick())
	results := collectResults(t, scheduler, 1)
	assert.True(t, results[0].Failed, "неполная окрестность — Failed, не молчание")
	assert.Equal(t, world.ChunkPos{}, results[0].Pos)
}

// TestGeneratedTerrainMeshes: сгенерированный ландшафт проходит весь
// конвейер и даёт непустую геометрию.
func TestGeneratedTerrainMeshes(t *testing.T) {
	store, tracker := newPipeline(t)
	generator := world.NewTerrainGenerator(1337)

	for cx := -1; cx <= 1; cx++ {
		for cz := -1; cz <= 1; cz++ {
			for cy := -1; cy <= 2; cy++ {
				pos := world.ChunkPos{X: cx, Y: cy, Z: cz}
				blocks, light := generator.Generate(pos)
				_, err := store.Load(pos, blocks, light)
				require.NoError(t, err)
			}
		}
	}

	// Полная окрестность есть у колонок x=0, z=0 с y в {0, 1}
	require.Equal(t, 2, tracker.Pending())

	scheduler := mesher.NewScheduler(store, tracker, mesher.SchedulerOptions{
		Workers: 2, JobsPerTick: 8, Mode: mesher.ModeGreedy, Sampler: mesher.SmoothLight{},
	})
	scheduler.Start()
	defer scheduler.Stop()

	require.Equal(t, 2, scheduler.Tick())
	results := collectResults(t, scheduler, 2)

	nonEmpty := 0
	for _, result := range results {
		require.False(t, result.Failed)
		if !result.Mesh.IsEmpty() {
			nonEmpty++
			// Число индексов всегда кратно треугольнику
			assert.Zero(t, len(result.Mesh.Indices)%3)
		}
	}
	assert.Greater(t, nonEmpty, 0, "чанк с поверхностью обязан дать геометрию")
}

// TestUnloadDuringMeshing: выгрузка чанка с живым вью не ломает читателей
func TestUnloadDuringMeshing(t *testing.T) {
	store, tracker := newPipeline(t)
	loadAirCube(t, store, world.ChunkPos{})

	view := mesher.LockNeighborhood(store, world.ChunkPos{})
	require.NotNil(t, view)

	// Выгружаем весь куб, пока вью живо
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				store.Unload(world.ChunkPos{X: dx, Y: dy, Z: dz})
			}
		}
	}

	// Снапшоты остаются валидными до Release
	assert.Equal(t, block.AirBlockID, view.Block(5, 5, 5))
	view.Release()

	assert.Zero(t, tracker.Pending(), "после выгрузки очередь мешинга пуста")
	assert.Zero(t, store.Len())
}
