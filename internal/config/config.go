package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации клиента.

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Mesher  MesherConfig  `yaml:"mesher"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type WorldConfig struct {
	Seed          int64 `yaml:"seed"`
	PreloadRadius int   `yaml:"preload_radius"`
	TickRateHz    int   `yaml:"tick_rate_hz"`
}

type MesherConfig struct {
	Mode        string `yaml:"mode"`     // cull | greedy
	Lighting    string `yaml:"lighting"` // simple | smooth
	Workers     int    `yaml:"workers"`
	JobsPerTick int    `yaml:"jobs_per_tick"`
}

type MetricsConfig struct {
	Port             int  `yaml:"port"`
	TelemetryEnabled bool `yaml:"telemetry_enabled"`
}

// GetSeed возвращает сид мира с поддержкой fallback значений
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 1337
}

// GetPreloadRadius возвращает радиус предзагрузки чанков
func (w *WorldConfig) GetPreloadRadius() int {
	return getIntWithEnvFallback(w.PreloadRadius, "VOXEL_PRELOAD_RADIUS", 4)
}

// GetTickRateHz возвращает частоту тиков симуляции
func (w *WorldConfig) GetTickRateHz() int {
	return getIntWithEnvFallback(w.TickRateHz, "VOXEL_TICK_RATE", 20)
}

// GetMode возвращает режим мешера: cull либо greedy
func (m *MesherConfig) GetMode() string {
	return getStringWithEnvFallback(m.Mode, "VOXEL_MESHER_MODE", "greedy")
}

// GetLighting возвращает стратегию выборки света: simple либо smooth
func (m *MesherConfig) GetLighting() string {
	return getStringWithEnvFallback(m.Lighting, "VOXEL_MESHER_LIGHTING", "smooth")
}

// GetWorkers возвращает размер пула воркеров мешера
func (m *MesherConfig) GetWorkers() int {
	return getIntWithEnvFallback(m.Workers, "VOXEL_MESHER_WORKERS", 4)
}

// GetJobsPerTick возвращает бюджет задач мешинга на один тик
func (m *MesherConfig) GetJobsPerTick() int {
	return getIntWithEnvFallback(m.JobsPerTick, "VOXEL_MESHER_JOBS_PER_TICK", 16)
}

// GetPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (m *MetricsConfig) GetPort() int {
	return getIntWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

// getStringWithEnvFallback возвращает строку с приоритетом: config -> env -> default
func getStringWithEnvFallback(configVal, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
