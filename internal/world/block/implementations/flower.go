package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// FlowerBehavior реализует свойства цветка (крест)
type FlowerBehavior struct{}

// ID возвращает идентификатор блока
func (b *FlowerBehavior) ID() block.BlockID {
	return block.FlowerBlockID
}

// Name возвращает имя блока
func (b *FlowerBehavior) Name() string {
	return "Flower"
}

// MeshType возвращает тип геометрии: крест
func (b *FlowerBehavior) MeshType() block.MeshType {
	return block.MeshCross
}

// Liquid возвращает false
func (b *FlowerBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает false
func (b *FlowerBehavior) OpaqueForAO() bool {
	return false
}

// Textures возвращает текстуру цветка
func (b *FlowerBehavior) Textures() block.FaceTextures {
	return block.Uniform(texFlower)
}
