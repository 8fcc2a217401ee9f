package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// ChunkBits определяет размер чанка как степень двойки: 2^5 = 32
const ChunkBits = 5

// ChunkSize — длина ребра чанка в блоках
const ChunkSize = 1 << ChunkBits

// ToChunkCoords преобразует глобальные координаты блока в координаты чанка
func (v Vec3) ToChunkCoords() Vec3 {
	return Vec3{X: v.X >> ChunkBits, Y: v.Y >> ChunkBits, Z: v.Z >> ChunkBits} // Деление на 32 с округлением вниз
}

// LocalInChunk возвращает локальные координаты блока внутри чанка
func (v Vec3) LocalInChunk() Vec3 {
	mask := ChunkSize - 1
	return Vec3{X: v.X & mask, Y: v.Y & mask, Z: v.Z & mask} // Модуль 32 (корректен и для отрицательных)
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает other из v
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale умножает каждую координату на множитель
func (v Vec3) Scale(k int) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Offset возвращает вектор, смещённый на (dx, dy, dz)
func (v Vec3) Offset(dx, dy, dz int) Vec3 {
	return Vec3{X: v.X + dx, Y: v.Y + dy, Z: v.Z + dz}
}
