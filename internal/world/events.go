package world

import (
	"encoding/json"

	"github.com/annel0/voxel-client/internal/eventbus"
)

// Типы событий жизненного цикла чанков, публикуемые на шине
const (
	EventChunkLoaded   = "chunk_loaded"
	EventChunkUnloaded = "chunk_unloaded"
	EventChunkModified = "chunk_modified"
)

// eventSource — имя источника в конвертах шины
const eventSource = "chunk_store"

// ChunkEventPayload — полезная нагрузка событий чанков
type ChunkEventPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// DecodeChunkEvent извлекает позицию чанка из конверта
func DecodeChunkEvent(ev *eventbus.Envelope) (ChunkPos, error) {
	var payload ChunkEventPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		return ChunkPos{}, err
	}
	return ChunkPos{X: payload.X, Y: payload.Y, Z: payload.Z}, nil
}

func encodeChunkEvent(eventType string, pos ChunkPos) *eventbus.Envelope {
	payload, _ := json.Marshal(ChunkEventPayload{X: pos.X, Y: pos.Y, Z: pos.Z})
	return eventbus.NewEnvelope(eventSource, eventType, payload)
}
