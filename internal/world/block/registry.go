package block

import "fmt"

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// MustGet возвращает поведение или паникует.
// Неизвестный ID в данных чанка — ошибка программиста: регистр и данные
// мира обязаны быть согласованы, восстанавливаться тут не из чего.
func MustGet(id BlockID) BlockBehavior {
	behavior, exists := registry[id]
	if !exists {
		panic(fmt.Sprintf("block: неизвестный BlockID %d в данных чанка", id))
	}
	return behavior
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	// Базовые типы блоков
	AirBlockID   BlockID = iota // 0
	StoneBlockID                // 1
	GrassBlockID                // 2
	WaterBlockID                // 3
	SandBlockID                 // 4
	DirtBlockID                 // 5

	// Для возможности расширения оставляем промежутки между категориями

	// Декоративные блоки (начиная с 100)
	TallGrassBlockID BlockID = 100 // Высокая трава (крест)
	FlowerBlockID    BlockID = 101 // Цветок (крест)
)
