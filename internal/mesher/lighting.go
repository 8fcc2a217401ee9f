package mesher

import (
	"github.com/annel0/voxel-client/internal/world"
)

// Индексы углов квада в плоскости грани (u, v)
const (
	cornerNegNeg = 0
	cornerNegPos = 1
	cornerPosNeg = 2
	cornerPosPos = 3
)

// FaceLight — свет четырёх углов одной грани
type FaceLight [4]world.LightValue

// Intensity — суммарная интенсивность по диагонали для выбора разворота квада
func (f FaceLight) Intensity(corner int) int {
	return f[corner].Intensity()
}

// LightSampler выбирает свет для грани блока. Стратегия задаётся конфигом
// и подменяется в тестах.
type LightSampler interface {
	FaceLight(view *NeighborhoodView, x, y, z int, side Side) FaceLight
}

// SimpleLight — один сэмпл из ячейки прямо напротив грани, все углы
// одинаковые. Дёшево, но даёт плоское освещение без градиентов.
type SimpleLight struct{}

func (SimpleLight) FaceLight(view *NeighborhoodView, x, y, z int, side Side) FaceLight {
	n := side.Normal()
	l := view.Light(x+n.X, y+n.Y, z+n.Z)
	return FaceLight{l, l, l, l}
}

// SmoothLight комбинирует свет четырёх ячеек, разделяющих каждый угол в
// касательной плоскости. Насыщающий максимум по каналам вместо среднего:
// один яркий источник должен доминировать, а не размываться.
type SmoothLight struct{}

func (SmoothLight) FaceLight(view *NeighborhoodView, x, y, z int, side Side) FaceLight {
	sample := func(du, dv int) world.LightValue {
		off := side.UVLToXYZ(du, dv, 1)
		return view.Light(x+off.X, y+off.Y, z+off.Z)
	}

	corner := func(u, v int) world.LightValue {
		light := sample(0, 0)
		light = light.Max(sample(u, 0))
		light = light.Max(sample(0, v))
		light = light.Max(sample(u, v))
		return light
	}

	return FaceLight{
		cornerNegNeg: corner(-1, -1),
		cornerNegPos: corner(-1, 1),
		cornerPosNeg: corner(1, -1),
		cornerPosPos: corner(1, 1),
	}
}

// SamplerForMode возвращает стратегию по имени из конфига;
// неизвестное имя откатывается к smooth.
func SamplerForMode(mode string) LightSampler {
	if mode == "simple" {
		return SimpleLight{}
	}
	return SmoothLight{}
}
