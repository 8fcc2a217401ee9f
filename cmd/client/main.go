package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-client/internal/config"
	"github.com/annel0/voxel-client/internal/eventbus"
	"github.com/annel0/voxel-client/internal/logging"
	"github.com/annel0/voxel-client/internal/mesher"
	"github.com/annel0/voxel-client/internal/observability"
	"github.com/annel0/voxel-client/internal/world"

	// Регистрация стандартного набора блоков
	_ "github.com/annel0/voxel-client/internal/world/block/implementations"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("client"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🎮 Запуск воксельного клиента...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{} // дефолты через Get*-методы
	}

	seed := cfg.World.GetSeed()
	radius := cfg.World.GetPreloadRadius()
	tickRate := cfg.World.GetTickRateHz()
	logging.Info("📡 Конфигурация: seed=%d, радиус=%d, тик=%d Гц, мешер=%s/%s",
		seed, radius, tickRate, cfg.Mesher.GetMode(), cfg.Mesher.GetLighting())

	// === ТЕЛЕМЕТРИЯ ===
	ctx := context.Background()
	if cfg.Metrics.TelemetryEnabled {
		shutdown, err := observability.InitTelemetry(ctx, "voxel-client")
		if err != nil {
			logging.Warn("⚠️ OpenTelemetry недоступен: %v", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// === ШИНА СОБЫТИЙ И МЕТРИКИ ===
	bus := eventbus.NewMemoryBus()
	exporter := eventbus.NewMetricsExporter(bus)
	exporter.StartHTTP(fmt.Sprintf(":%d", cfg.Metrics.GetPort()))
	defer exporter.Stop()

	// === МИР ===
	store := world.NewChunkStore(bus)
	tracker := mesher.NewMeshTracker()

	// Трекер слушает жизненный цикл чанков. Шина синхронная, поэтому
	// обработчик выполняется на горутине главного цикла.
	sub, err := bus.Subscribe(ctx, eventbus.Filter{
		Types: []string{world.EventChunkLoaded, world.EventChunkUnloaded},
	}, func(_ context.Context, ev *eventbus.Envelope) {
		pos, err := world.DecodeChunkEvent(ev)
		if err != nil {
			logging.Error("❌ Повреждённое событие %s: %v", ev.EventType, err)
			return
		}
		switch ev.EventType {
		case world.EventChunkLoaded:
			tracker.AddChunk(pos)
		case world.EventChunkUnloaded:
			tracker.RemoveChunk(pos)
		}
	})
	if err != nil {
		log.Fatalf("❌ Ошибка подписки на шину: %v", err)
	}
	defer sub.Unsubscribe()

	// === ГЕНЕРАЦИЯ И ПРЕДЗАГРУЗКА ===
	generator := world.NewTerrainGenerator(seed)
	preload(store, generator, radius)
	logging.Info("🌍 Предзагружено %d чанков", store.Len())

	// === ПЛАНИРОВЩИК МЕШИНГА ===
	scheduler := mesher.NewScheduler(store, tracker, mesher.SchedulerOptions{
		Workers:     cfg.Mesher.GetWorkers(),
		JobsPerTick: cfg.Mesher.GetJobsPerTick(),
		Mode:        mesher.Mode(cfg.Mesher.GetMode()),
		Sampler:     mesher.SamplerForMode(cfg.Mesher.GetLighting()),
	})
	scheduler.Start()
	defer scheduler.Stop()

	// === ГЛАВНЫЙ ЦИКЛ ===
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	var meshed, failed int
	for {
		select {
		case <-ticker.C:
			// 1. Применяем накопленные правки
			for pos := range store.FlushAll() {
				tracker.RequestMesh(pos)
			}

			// 2. Раздаём бюджет задач воркерам
			scheduler.Tick()

			// 3. Дренируем готовые меши
		drain:
			for {
				select {
				case result := <-scheduler.Results():
					if result.Failed {
						failed++
						tracker.MeshFailed(result.Pos)
					} else {
						meshed++
						// Здесь меш уходит на загрузку в GPU-буферы
					}
				default:
					break drain
				}
			}

		case <-stop:
			logging.Info("🛑 Завершение: мешей готово %d, неудач %d", meshed, failed)
			return
		}
	}
}

// preload загружает чанки в радиусе вокруг начала координат: по горизонтали
// квадратом, по вертикали — весь полезный диапазон ландшафта
func preload(store *world.ChunkStore, gen *world.TerrainGenerator, radius int) {
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			for cy := -1; cy <= 2; cy++ {
				pos := world.ChunkPos{X: cx, Y: cy, Z: cz}
				blocks, light := gen.Generate(pos)
				if _, err := store.Load(pos, blocks, light); err != nil {
					logging.Warn("⚠️ Чанк %v не загружен: %v", pos, err)
				}
			}
		}
	}
}
