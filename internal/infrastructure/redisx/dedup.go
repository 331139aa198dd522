package redisx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/marketplace-api/internal/application/ports"
)

var _ ports.DedupStore = (*DedupStore)(nil)

// Clave de dedup de eventos de webhook: dedup:payment:{event_id}.
const keyDedup = "dedup:payment:%s"

// DedupStore registra ids de eventos de webhook ya procesados con SET NX + TTL.
type DedupStore struct {
	rdb *redis.Client
}

// NewDedupStore construye el registro de dedup sobre Redis.
func NewDedupStore(rdb *redis.Client) *DedupStore {
	return &DedupStore{rdb: rdb}
}

// MarkIfNew devuelve true si el evento no se había visto. SETNX es atómico:
// dos entregas concurrentes del mismo evento no pueden ganar las dos.
func (d *DedupStore) MarkIfNew(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, fmt.Sprintf(keyDedup, eventID), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx dedup: %w", err)
	}
	return ok, nil
}

var _ ports.DedupStore = (*MemoryDedupStore)(nil)

// MemoryDedupStore es el respaldo en memoria cuando REDIS_ADDR no está
// configurado. Solo protege contra duplicados dentro del mismo proceso.
type MemoryDedupStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryDedupStore construye el registro de dedup en memoria.
func NewMemoryDedupStore() *MemoryDedupStore {
	return &MemoryDedupStore{seen: make(map[string]time.Time)}
}

// MarkIfNew registra el evento si no se había visto o si su TTL ya venció.
func (d *MemoryDedupStore) MarkIfNew(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	if exp, ok := d.seen[eventID]; ok && now.Before(exp) {
		return false, nil
	}
	d.seen[eventID] = now.Add(ttl)
	return true, nil
}
