package mesher

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/observability"
	"github.com/annel0/voxel-client/internal/world"
	"github.com/annel0/voxel-client/internal/world/block"
)

// CompletedMesh — результат одной задачи мешинга. Планировщик отвечает
// ровно одним сообщением на каждую отправленную задачу, успех или неудача.
type CompletedMesh struct {
	Pos    world.ChunkPos
	Mesh   TerrainMesh
	Failed bool
}

// SchedulerOptions — параметры пула мешинга
type SchedulerOptions struct {
	Workers     int
	JobsPerTick int
	Mode        Mode
	Sampler     LightSampler
}

// Scheduler распределяет задачи мешинга по пулу воркеров. Бюджет задач
// на тик размазывает стоимость ремеша по кадрам вместо одного спайка.
type Scheduler struct {
	store   *world.ChunkStore
	tracker *MeshTracker
	opts    SchedulerOptions

	jobs    chan world.ChunkPos
	results chan CompletedMesh

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	metrics *schedulerMetrics
}

// NewScheduler создаёт планировщик над хранилищем и трекером.
// Трекером продолжает владеть главный цикл: Tick зовётся только оттуда.
func NewScheduler(store *world.ChunkStore, tracker *MeshTracker, opts SchedulerOptions) *Scheduler {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.JobsPerTick <= 0 {
		opts.JobsPerTick = 16
	}
	if opts.Sampler == nil {
		opts.Sampler = SmoothLight{}
	}
	if opts.Mode == "" {
		opts.Mode = ModeGreedy
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		store:   store,
		tracker: tracker,
		opts:    opts,
		jobs:    make(chan world.ChunkPos, opts.Workers*4),
		results: make(chan CompletedMesh, 256),
		ctx:     ctx,
		cancel:  cancel,
		metrics: newSchedulerMetrics(),
	}
}

// Start запускает пул воркеров
func (s *Scheduler) Start() {
	for i := 0; i < s.opts.Workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	logging.Info("🧵 Пул мешинга запущен: %d воркеров, режим %s", s.opts.Workers, s.opts.Mode)
}

// Stop останавливает пул и дожидается воркеров
func (s *Scheduler) Stop() {
	s.cancel()
	close(s.jobs)
	s.wg.Wait()
	logging.Info("🧵 Пул мешинга остановлен")
}

// Results — канал готовых мешей; потребитель дренирует его раз в тик
func (s *Scheduler) Results() <-chan CompletedMesh {
	return s.results
}

// Tick забирает из трекера до JobsPerTick готовых позиций и раздаёт их
// воркерам. Если канал задач забит, остаток подождёт следующего тика.
func (s *Scheduler) Tick() int {
	dispatched := 0
	for dispatched < s.opts.JobsPerTick {
		pos, ok := s.tracker.Next()
		if !ok {
			break
		}
		select {
		case s.jobs <- pos:
			dispatched++
		default:
			// Воркеры не успевают — вернуть позицию в очередь
			s.tracker.RequestMesh(pos)
			s.metrics.queueLength.Set(float64(s.tracker.Pending()))
			return dispatched
		}
	}
	s.metrics.queueLength.Set(float64(s.tracker.Pending()))
	return dispatched
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for pos := range s.jobs {
		if s.ctx.Err() != nil {
			return
		}
		s.process(pos)
	}
}

func (s *Scheduler) process(pos world.ChunkPos) {
	_, span := observability.Tracer().Start(s.ctx, "mesher.process",
		trace.WithAttributes(
			attribute.Int("chunk.x", pos.X),
			attribute.Int("chunk.y", pos.Y),
			attribute.Int("chunk.z", pos.Z),
		))
	defer span.End()

	start := time.Now()

	view := LockNeighborhood(s.store, pos)
	if view == nil {
		// Сосед выгрузился между постановкой задачи и захватом окрестности
		s.metrics.jobs.WithLabelValues("failed").Inc()
		s.results <- CompletedMesh{Pos: pos, Failed: true}
		return
	}
	defer view.Release()

	// Гомогенный чанк мешить не нужно, если ни одна из шести граней не даст
	// ни одного квада: сам без геометрии, либо все соседи по граням гомогенны
	// и грани к ним не требуются
	if id, ok := view.CenterHomogeneous(); ok {
		if homogeneousSkippable(view, id) {
			s.metrics.jobs.WithLabelValues("skipped").Inc()
			s.results <- CompletedMesh{Pos: pos}
			return
		}
	}

	mesh := NewMeshContext(view, s.opts.Sampler).Mesh(s.opts.Mode)

	s.metrics.jobs.WithLabelValues("completed").Inc()
	s.metrics.jobDuration.Observe(time.Since(start).Seconds())
	s.metrics.quads.Add(float64(len(mesh.Indices) / 6))

	logging.Trace("🔨 Чанк %v: %d вершин, %d индексов за %v",
		pos, len(mesh.Vertices), len(mesh.Indices), time.Since(start))

	s.results <- CompletedMesh{Pos: pos, Mesh: mesh}
}

// homogeneousSkippable решает, может ли гомогенный чанк id обойтись пустым
// мешем без обхода ячеек.
func homogeneousSkippable(view *NeighborhoodView, id block.BlockID) bool {
	switch block.MustGet(id).MeshType() {
	case block.MeshNone:
		return true
	case block.MeshCross:
		// Крестовая геометрия не зависит от соседей
		return false
	}
	skippable := true
	EnumerateSides(func(side Side) {
		neighbor, ok := view.FaceNeighborHomogeneous(side)
		if !ok || needsFace(id, neighbor) {
			skippable = false
		}
	})
	return skippable
}
