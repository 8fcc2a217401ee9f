package world

// ChunkData хранит значения плотного куба 32³ в одном из двух представлений:
// гомогенном (все ячейки равны — обычный случай для воздуха и камня) или
// плотном массиве. Плотный массив создаётся лениво, при первой записи
// отличающегося значения.
type ChunkData[T comparable] struct {
	uniform bool
	fill    T
	data    []T
}

// Homogeneous создаёт гомогенные данные: каждая ячейка равна value
func Homogeneous[T comparable](value T) ChunkData[T] {
	return ChunkData[T]{uniform: true, fill: value}
}

// FromSlice создаёт данные из плотного буфера длиной ChunkVolume (порядок XZY).
// Буфер переходит во владение ChunkData.
func FromSlice[T comparable](data []T) (ChunkData[T], bool) {
	if len(data) != ChunkVolume {
		return ChunkData[T]{}, false
	}
	return ChunkData[T]{data: data}, true
}

// Get возвращает значение ячейки по локальному индексу
func (d *ChunkData[T]) Get(idx ChunkIndex) T {
	if d.uniform {
		return d.fill
	}
	return d.data[idx.linear()]
}

// IsHomogeneous возвращает (значение, true), если данные гомогенны
func (d *ChunkData[T]) IsHomogeneous() (T, bool) {
	return d.fill, d.uniform
}

// Set записывает значение по индексу, при необходимости продвигая
// гомогенные данные до плотного массива. Возвращает true, если значение
// ячейки реально изменилось.
func (d *ChunkData[T]) Set(idx ChunkIndex, value T) bool {
	if d.uniform {
		if value == d.fill {
			return false
		}
		d.promote()
	}
	slot := &d.data[idx.linear()]
	if *slot == value {
		return false
	}
	*slot = value
	return true
}

// promote разворачивает гомогенные данные в плотный массив
func (d *ChunkData[T]) promote() {
	data := make([]T, ChunkVolume)
	var zero T
	if d.fill != zero {
		for i := range data {
			data[i] = d.fill
		}
	}
	d.uniform = false
	d.fill = zero
	d.data = data
}

// Clone возвращает глубокую копию данных
func (d *ChunkData[T]) Clone() ChunkData[T] {
	if d.uniform {
		return ChunkData[T]{uniform: true, fill: d.fill}
	}
	data := make([]T, ChunkVolume)
	copy(data, d.data)
	return ChunkData[T]{data: data}
}
