package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sistema-manobrista/valet-api/internal/models"
)

const (
	activeEventKey = "eventos:ativo"
	activeEventTTL = 30 * time.Second
)

// ActiveEvent guarda o evento ativo no Redis. O dashboard consulta
// GET /eventos/ativo em polling; o cache evita bater no banco a cada tela.
// Com client nil todas as operações viram no-op.
type ActiveEvent struct {
	rdb *redis.Client
}

func NewActiveEvent(rdb *redis.Client) *ActiveEvent {
	return &ActiveEvent{rdb: rdb}
}

// Get retorna (evento, true) em cache hit. Um hit com payload "null" significa
// "nenhum evento ativo" e retorna (nil, true).
func (c *ActiveEvent) Get(ctx context.Context) (*models.Event, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, activeEventKey).Bytes()
	if err != nil {
		return nil, false
	}

	var ev *models.Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, false
	}
	return ev, true
}

// Set aceita nil para cachear a ausência de evento ativo.
func (c *ActiveEvent) Set(ctx context.Context, ev *models.Event) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, activeEventKey, raw, activeEventTTL)
}

func (c *ActiveEvent) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, activeEventKey)
}
