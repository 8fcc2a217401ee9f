package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// Текстуры атласа ландшафта (индексы согласованы с клиентским атласом)
const (
	texStone     block.TextureID = 1
	texDirt      block.TextureID = 2
	texGrassTop  block.TextureID = 3
	texGrassSide block.TextureID = 4
	texSand      block.TextureID = 5
	texWater     block.TextureID = 6
	texTallGrass block.TextureID = 7
	texFlower    block.TextureID = 8
)

// StoneBehavior реализует свойства блока камня
type StoneBehavior struct{}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// MeshType возвращает тип геометрии: полный куб
func (b *StoneBehavior) MeshType() block.MeshType {
	return block.MeshFullCube
}

// Liquid возвращает false, камень не жидкость
func (b *StoneBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает true, камень затеняет соседние углы
func (b *StoneBehavior) OpaqueForAO() bool {
	return true
}

// Textures возвращает текстуру камня для всех граней
func (b *StoneBehavior) Textures() block.FaceTextures {
	return block.Uniform(texStone)
}
