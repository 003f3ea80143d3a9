package listener

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/iudanet/pubsub/internal/models"
)

// DefaultDedupeSize размер кэша отпечатков по умолчанию
const DefaultDedupeSize = 100

type digest [32]byte

// DedupeCache bounded FIFO set of message digests. When full, the oldest
// digest is evicted first.
type DedupeCache struct {
	seen  map[digest]struct{}
	order []digest
	mu    sync.Mutex
	size  int
	head  int
}

// NewDedupeCache создает кэш на size отпечатков
func NewDedupeCache(size int) *DedupeCache {
	if size <= 0 {
		size = DefaultDedupeSize
	}
	return &DedupeCache{
		seen:  make(map[digest]struct{}, size),
		order: make([]digest, 0, size),
		size:  size,
	}
}

// Seen сообщает, встречалось ли событие раньше, и запоминает его.
// Учитываются только сообщения и сигналы; остальные события не подавляются.
func (c *DedupeCache) Seen(event models.Event) bool {
	sum, ok := eventDigest(event)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.seen[sum]; found {
		return true
	}

	if len(c.order) < c.size {
		c.order = append(c.order, sum)
	} else {
		delete(c.seen, c.order[c.head])
		c.order[c.head] = sum
		c.head = (c.head + 1) % c.size
	}
	c.seen[sum] = struct{}{}
	return false
}

// Len возвращает количество отпечатков в кэше
func (c *DedupeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// eventDigest отпечаток (тип, канал, timetoken публикации, payload)
func eventDigest(event models.Event) (digest, bool) {
	var (
		kind    byte
		payload []byte
	)
	switch ev := event.(type) {
	case *models.MessageEvent:
		kind, payload = 'm', ev.Payload
	case *models.SignalEvent:
		kind, payload = 's', ev.Payload
	default:
		return digest{}, false
	}

	env := event.Common()
	hasher := blake3.New()
	_, _ = hasher.Write([]byte{kind})
	writeField(hasher, []byte(env.Channel))
	var tt [8]byte
	binary.BigEndian.PutUint64(tt[:], uint64(env.PublishCursor.Timetoken))
	_, _ = hasher.Write(tt[:])
	writeField(hasher, payload)

	var sum digest
	copy(sum[:], hasher.Sum(nil))
	return sum, true
}

// writeField пишет поле с префиксом длины, чтобы границы полей не смешивались
func writeField(hasher *blake3.Hasher, data []byte) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	_, _ = hasher.Write(length[:])
	_, _ = hasher.Write(data)
}
