package util

import (
	"github.com/aquilax/go-perlin"
)

// NoiseGenerator оборачивает шум Перлина для генерации ландшафта.
// Отдельный экземпляр на генератор — без глобального состояния,
// чтобы тесты с разными сидами не мешали друг другу.
type NoiseGenerator struct {
	perlin *perlin.Perlin
}

// NewNoiseGenerator создаёт генератор шума с указанным сидом
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &NoiseGenerator{perlin: perlin.NewPerlin(alpha, beta, n, seed)}
}

// Noise2D возвращает значение шума для координат, нормированное в [0, 1]
func (g *NoiseGenerator) Noise2D(x, y float64) float64 {
	// Noise2D отдаёт значение от -1 до 1
	return (g.perlin.Noise2D(x, y) + 1.0) / 2.0
}
