package world

import (
	"sync/atomic"
)

// VersionedCell — версионная ячейка с одним текущим значением и дешёвыми
// read-only снимками. Опубликованная версия неизменяема: Update строит копию,
// правит её приватно и публикует атомарной заменой указателя, помечая старую
// версию осиротевшей. Поэтому Snapshot — это всего лишь чтение указателя:
// он не ждёт ни других читателей, ни писателя, даже если тот прямо сейчас
// готовит новую версию.
//
// Осиротение — консультативный флаг: существующие снимки продолжают читать
// старые данные, корректность от него не зависит. Старые версии живут, пока
// на них смотрит хоть один снимок, дальше их забирает сборщик мусора.
// Контракт: Update не вызывается конкурентно для одной ячейки
// (писатель единственный).
type VersionedCell[T any] struct {
	current atomic.Pointer[cellInner[T]]
}

type cellInner[T any] struct {
	orphaned atomic.Bool
	value    T
}

// NewVersionedCell создаёт ячейку с начальным значением
func NewVersionedCell[T any](value T) *VersionedCell[T] {
	cell := &VersionedCell[T]{}
	cell.current.Store(&cellInner[T]{value: value})
	return cell
}

// CellSnapshot — read-only снимок значения ячейки. Снимок обязан быть
// освобождён через Release; до этого он удерживает свою версию живой.
type CellSnapshot[T any] struct {
	inner    *cellInner[T]
	released bool
}

// Snapshot возвращает снимок текущего значения. Никогда не блокируется:
// версия под снимком неизменяема, синхронизация с писателем не нужна.
func (c *VersionedCell[T]) Snapshot() *CellSnapshot[T] {
	return &CellSnapshot[T]{inner: c.current.Load()}
}

// Value возвращает указатель на значение снимка. Значение read-only по
// контракту: мутация через него — ошибка программиста.
func (s *CellSnapshot[T]) Value() *T {
	return &s.inner.value
}

// IsOrphaned сообщает, опубликована ли версия новее этой. false не
// гарантирует актуальность (новая версия могла появиться сразу после
// проверки), но true гарантирует устаревание. Освобождённый снимок
// считается устаревшим.
func (s *CellSnapshot[T]) IsOrphaned() bool {
	if s.released {
		return true
	}
	return s.inner.orphaned.Load()
}

// Release освобождает снимок: версия перестаёт удерживаться от сборки
// мусора. Повторный вызов безопасен; Value после Release — ошибка
// программиста.
func (s *CellSnapshot[T]) Release() {
	if s.released {
		return
	}
	s.released = true
	s.inner = nil
}

// Update строит копию текущего значения через clone и применяет к ней mutate.
// Если mutate вернул true, копия публикуется, а прежняя версия осиротевает;
// иначе копия отбрасывается и ячейка остаётся как была. Возвращает признак
// публикации.
func (c *VersionedCell[T]) Update(clone func(*T) T, mutate func(*T) bool) bool {
	inner := c.current.Load()

	fresh := clone(&inner.value)
	if !mutate(&fresh) {
		return false
	}

	// Публикация после мутации: читатели видят либо старую версию целиком,
	// либо новую целиком.
	c.current.Store(&cellInner[T]{value: fresh})
	inner.orphaned.Store(true)
	return true
}
