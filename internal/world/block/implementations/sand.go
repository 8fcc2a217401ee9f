package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// SandBehavior реализует свойства блока песка
type SandBehavior struct{}

// ID возвращает идентификатор блока
func (b *SandBehavior) ID() block.BlockID {
	return block.SandBlockID
}

// Name возвращает имя блока
func (b *SandBehavior) Name() string {
	return "Sand"
}

// MeshType возвращает тип геометрии: полный куб
func (b *SandBehavior) MeshType() block.MeshType {
	return block.MeshFullCube
}

// Liquid возвращает false
func (b *SandBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает true
func (b *SandBehavior) OpaqueForAO() bool {
	return true
}

// Textures возвращает текстуру песка для всех граней
func (b *SandBehavior) Textures() block.FaceTextures {
	return block.Uniform(texSand)
}
