package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// AirBehavior реализует свойства воздуха
type AirBehavior struct{}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// MeshType возвращает тип геометрии: воздух не рисуется
func (b *AirBehavior) MeshType() block.MeshType {
	return block.MeshNone
}

// Liquid возвращает false, воздух не жидкость
func (b *AirBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает false, воздух ничего не затеняет
func (b *AirBehavior) OpaqueForAO() bool {
	return false
}

// Textures возвращает пустой набор (не используется)
func (b *AirBehavior) Textures() block.FaceTextures {
	return block.FaceTextures{}
}
