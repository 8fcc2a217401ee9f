package implementations

import (
	"github.com/annel0/voxel-client/internal/world/block"
)

// TallGrassBehavior реализует свойства высокой травы (крест)
type TallGrassBehavior struct{}

// ID возвращает идентификатор блока
func (b *TallGrassBehavior) ID() block.BlockID {
	return block.TallGrassBlockID
}

// Name возвращает имя блока
func (b *TallGrassBehavior) Name() string {
	return "TallGrass"
}

// MeshType возвращает тип геометрии: крест
func (b *TallGrassBehavior) MeshType() block.MeshType {
	return block.MeshCross
}

// Liquid возвращает false
func (b *TallGrassBehavior) Liquid() bool {
	return false
}

// OpaqueForAO возвращает false: крест не затеняет углы соседей
func (b *TallGrassBehavior) OpaqueForAO() bool {
	return false
}

// Textures возвращает текстуру травы (для креста берётся грань +X)
func (b *TallGrassBehavior) Textures() block.FaceTextures {
	return block.Uniform(texTallGrass)
}
