package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// GrassBehavior реализует свойства блока травяного дёрна
type GrassBehavior struct{}

// ID возвращает идентификатор блока
func (b *GrassBehavior) ID() block.BlockID {
	return block.GrassBlockID
}

// Name возвращает имя блока
func (b *GrassBehavior) Name() string {
	return "Grass"
}

// MeshType возвращает тип геометрии: полный куб
func (b *GrassBehavior) MeshType() block.MeshType {
	return block.MeshFullCube
}

// Liquid возвращает false
func (b *GrassBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает true
func (b *GrassBehavior) OpaqueForAO() bool {
	return true
}

// Textures возвращает травяной верх, землю снизу и боковую текстуру по периметру
func (b *GrassBehavior) Textures() block.FaceTextures {
	// Порядок граней: +X, -X, +Y, -Y, +Z, -Z
	return block.FaceTextures{
		texGrassSide, texGrassSide,
		texGrassTop, texDirt,
		texGrassSide, texGrassSide,
	}
}
