package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// WaterBehavior реализует свойства блока воды
type WaterBehavior struct{}

// ID возвращает идентификатор блока
func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

// Name возвращает имя блока
func (b *WaterBehavior) Name() string {
	return "Water"
}

// MeshType возвращает тип геометрии: полный куб (грани отсекаются по правилам жидкостей)
func (b *WaterBehavior) MeshType() block.MeshType {
	return block.MeshFullCube
}

// Liquid возвращает true, вода — жидкость
func (b *WaterBehavior) Liquid() bool {
	return true
}

// OpaqueForAO возвращает false: вода прозрачна и не затеняет углы
func (b *WaterBehavior) OpaqueForAO() bool {
	return false
}

// Textures возвращает текстуру воды для всех граней
func (b *WaterBehavior) Textures() block.FaceTextures {
	return block.Uniform(texWater)
}
