package block

// MeshType описывает геометрию, которой блок представлен в меше ландшафта
type MeshType uint8

const (
	// MeshNone — блок не порождает геометрию (воздух)
	MeshNone MeshType = iota
	// MeshFullCube — полный куб, участвует в greedy-мешинге
	MeshFullCube
	// MeshCross — крест из двух квадов (трава, цветы); мешится отдельным проходом
	MeshCross
)

// TextureID — индекс текстуры в атласе ландшафта
type TextureID uint16

// FaceTextures хранит текстуры для шести граней куба.
// Порядок фиксирован: +X, -X, +Y, -Y, +Z, -Z.
type FaceTextures [6]TextureID

// Uniform возвращает набор, в котором все шесть граней используют одну текстуру
func Uniform(tex TextureID) FaceTextures {
	return FaceTextures{tex, tex, tex, tex, tex, tex}
}

// BlockBehavior определяет рендер-свойства блока.
// Регистр read-only для мешера: он читает свойства, но никогда их не меняет.
type BlockBehavior interface {
	// ID возвращает идентификатор блока
	ID() BlockID

	// Name возвращает имя блока
	Name() string

	// MeshType возвращает тип геометрии блока
	MeshType() MeshType

	// Liquid сообщает, является ли блок жидкостью
	Liquid() bool

	// OpaqueForAO сообщает, затеняет ли блок соседние углы (ambient occlusion)
	OpaqueForAO() bool

	// Textures возвращает текстуры для шести граней (для MeshCross используется грань +X)
	Textures() FaceTextures
}
