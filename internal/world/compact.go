package world

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxel-client/internal/world/block"
)

// compactMagic + версия в начале каждого закодированного чанка
const (
	compactMagic   = 0xC4C4
	compactVersion = 1
)

// blockRun — серия одинаковых блоков в линейном порядке XZY
type blockRun struct {
	Count uint16
	ID    block.BlockID
}

// lightRun — серия одинаковых значений света
type lightRun struct {
	Count uint16
	Value LightValue
}

// CompactedChunk — RLE-представление снапшота чанка. Гомогенный чанк
// сжимается в одну серию, что даёт копеечный экспорт воздуха и океанов.
type CompactedChunk struct {
	Pos    ChunkPos
	blocks []blockRun
	light  []lightRun
}

// Compact строит RLE-представление из снапшота. Снапшот остаётся
// у вызывающего, Release здесь не делается.
func Compact(snap ChunkSnapshot) *CompactedChunk {
	c := &CompactedChunk{Pos: snap.Pos()}

	blocks := snap.Blocks()
	light := snap.Light()
	var idx ChunkIndex
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			for y := 0; y < ChunkSize; y++ {
				idx = ChunkIndex{uint16(x), uint16(y), uint16(z)}
				c.pushBlock(blocks.Get(idx))
				c.pushLight(light.Get(idx))
			}
		}
	}
	return c
}

func (c *CompactedChunk) pushBlock(id block.BlockID) {
	n := len(c.blocks)
	if n > 0 && c.blocks[n-1].ID == id && c.blocks[n-1].Count < 0xFFFF {
		c.blocks[n-1].Count++
		return
	}
	c.blocks = append(c.blocks, blockRun{Count: 1, ID: id})
}

func (c *CompactedChunk) pushLight(v LightValue) {
	n := len(c.light)
	if n > 0 && c.light[n-1].Value == v && c.light[n-1].Count < 0xFFFF {
		c.light[n-1].Count++
		return
	}
	c.light = append(c.light, lightRun{Count: 1, Value: v})
}

// Expand разворачивает RLE обратно в данные чанка. Одна серия на весь
// объём восстанавливается как гомогенный чанк без аллокации массива.
func (c *CompactedChunk) Expand() (ChunkData[block.BlockID], ChunkData[LightValue], error) {
	if len(c.blocks) == 1 && int(c.blocks[0].Count) == ChunkVolume {
		blocks := Homogeneous(c.blocks[0].ID)
		light, err := expandLight(c.light)
		return blocks, light, err
	}

	raw := make([]block.BlockID, 0, ChunkVolume)
	for _, run := range c.blocks {
		for i := uint16(0); i < run.Count; i++ {
			raw = append(raw, run.ID)
		}
	}
	if len(raw) != ChunkVolume {
		return ChunkData[block.BlockID]{}, ChunkData[LightValue]{}, fmt.Errorf("повреждённый RLE блоков: %d вокселей вместо %d", len(raw), ChunkVolume)
	}
	blocks, _ := FromSlice(raw)
	light, err := expandLight(c.light)
	return blocks, light, err
}

func expandLight(runs []lightRun) (ChunkData[LightValue], error) {
	if len(runs) == 1 && int(runs[0].Count) == ChunkVolume {
		return Homogeneous(runs[0].Value), nil
	}
	raw := make([]LightValue, 0, ChunkVolume)
	for _, run := range runs {
		for i := uint16(0); i < run.Count; i++ {
			raw = append(raw, run.Value)
		}
	}
	if len(raw) != ChunkVolume {
		return ChunkData[LightValue]{}, fmt.Errorf("повреждённый RLE света: %d вокселей вместо %d", len(raw), ChunkVolume)
	}
	data, _ := FromSlice(raw)
	return data, nil
}

//================ Wire-кодек =================//

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Encode сериализует чанк: little-endian заголовок и серии, затем zstd.
func (c *CompactedChunk) Encode() []byte {
	raw := make([]byte, 0, 32+4*len(c.blocks)+3*len(c.light))
	raw = binary.LittleEndian.AppendUint16(raw, compactMagic)
	raw = append(raw, compactVersion)
	raw = binary.LittleEndian.AppendUint64(raw, uint64(int64(c.Pos.X)))
	raw = binary.LittleEndian.AppendUint64(raw, uint64(int64(c.Pos.Y)))
	raw = binary.LittleEndian.AppendUint64(raw, uint64(int64(c.Pos.Z)))

	raw = binary.LittleEndian.AppendUint32(raw, uint32(len(c.blocks)))
	for _, run := range c.blocks {
		raw = binary.LittleEndian.AppendUint16(raw, run.Count)
		raw = binary.LittleEndian.AppendUint16(raw, uint16(run.ID))
	}
	raw = binary.LittleEndian.AppendUint32(raw, uint32(len(c.light)))
	for _, run := range c.light {
		raw = binary.LittleEndian.AppendUint16(raw, run.Count)
		raw = append(raw, byte(run.Value))
	}
	return zstdEncoder.EncodeAll(raw, nil)
}

// DecodeCompactedChunk разбирает результат Encode.
func DecodeCompactedChunk(data []byte) (*CompactedChunk, error) {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(raw) < 31 {
		return nil, fmt.Errorf("усечённый заголовок: %d байт", len(raw))
	}
	if binary.LittleEndian.Uint16(raw) != compactMagic {
		return nil, fmt.Errorf("неизвестная сигнатура 0x%04X", binary.LittleEndian.Uint16(raw))
	}
	if raw[2] != compactVersion {
		return nil, fmt.Errorf("неподдерживаемая версия %d", raw[2])
	}
	c := &CompactedChunk{Pos: ChunkPos{
		X: int(int64(binary.LittleEndian.Uint64(raw[3:]))),
		Y: int(int64(binary.LittleEndian.Uint64(raw[11:]))),
		Z: int(int64(binary.LittleEndian.Uint64(raw[19:]))),
	}}
	off := 27

	blockCount := int(binary.LittleEndian.Uint32(raw[off:]))
	off += 4
	if len(raw) < off+4*blockCount {
		return nil, fmt.Errorf("усечённые серии блоков")
	}
	c.blocks = make([]blockRun, blockCount)
	for i := range c.blocks {
		c.blocks[i].Count = binary.LittleEndian.Uint16(raw[off:])
		c.blocks[i].ID = block.BlockID(binary.LittleEndian.Uint16(raw[off+2:]))
		off += 4
	}

	if len(raw) < off+4 {
		return nil, fmt.Errorf("усечённый счётчик серий света")
	}
	lightCount := int(binary.LittleEndian.Uint32(raw[off:]))
	off += 4
	if len(raw) < off+3*lightCount {
		return nil, fmt.Errorf("усечённые серии света")
	}
	c.light = make([]lightRun, lightCount)
	for i := range c.light {
		c.light[i].Count = binary.LittleEndian.Uint16(raw[off:])
		c.light[i].Value = LightValue(raw[off+2])
		off += 3
	}
	return c, nil
}

// ExportChunk снимает снапшот чанка из хранилища и кодирует его.
func (s *ChunkStore) ExportChunk(pos ChunkPos) ([]byte, error) {
	c := s.Chunk(pos)
	if c == nil {
		return nil, fmt.Errorf("export %v: %w", pos, ErrChunkNotLoaded)
	}
	snap := c.Snapshot()
	defer snap.Release()
	return Compact(snap).Encode(), nil
}

// ImportChunk декодирует и загружает чанк в хранилище.
func (s *ChunkStore) ImportChunk(data []byte) (*Chunk, error) {
	compacted, err := DecodeCompactedChunk(data)
	if err != nil {
		return nil, err
	}
	blocks, light, err := compacted.Expand()
	if err != nil {
		return nil, err
	}
	return s.Load(compacted.Pos, blocks, light)
}
