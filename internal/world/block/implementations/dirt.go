package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// DirtBehavior реализует свойства блока земли
type DirtBehavior struct{}

// ID возвращает идентификатор блока
func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

// Name возвращает имя блока
func (b *DirtBehavior) Name() string {
	return "Dirt"
}

// MeshType возвращает тип геометрии: полный куб
func (b *DirtBehavior) MeshType() block.MeshType {
	return block.MeshFullCube
}

// Liquid возвращает false
func (b *DirtBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает true
func (b *DirtBehavior) OpaqueForAO() bool {
	return true
}

// Textures возвращает текстуру земли для всех граней
func (b *DirtBehavior) Textures() block.FaceTextures {
	return block.Uniform(texDirt)
}
