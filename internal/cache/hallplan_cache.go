// Package cache keeps generated hall listings in Redis so the listing
// endpoint can serve them without re-running the allocator.  Each session
// is stored under its own key and indexed in a set of known sessions.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/exam-hall-seating/internal/config"
	"github.com/iliyamo/exam-hall-seating/internal/seating"
)

// HallplanCache stores listing entries per (date, slot).
type HallplanCache struct {
	rdb *redis.Client
	cfg config.HallplanCacheConfig
}

// NewHallplanCache returns nil when caching is disabled or no client is
// available; a nil *HallplanCache is safe to call and behaves as empty.
func NewHallplanCache(cfg config.HallplanCacheConfig, rdb *redis.Client) *HallplanCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &HallplanCache{rdb: rdb, cfg: cfg}
}

func sessionMember(date string, slotNo uint8) string {
	return date + ":" + strconv.Itoa(int(slotNo))
}

func (c *HallplanCache) key(member string) string { return c.cfg.Prefix + ":listing:" + member }
func (c *HallplanCache) indexKey() string        { return c.cfg.Prefix + ":sessions" }

// Put replaces the cached listing of every session present in entries.
func (c *HallplanCache) Put(ctx context.Context, entries []seating.ListingEntry) error {
	if c == nil || len(entries) == 0 {
		return nil
	}
	bySession := make(map[string][]seating.ListingEntry)
	for _, e := range entries {
		m := sessionMember(e.Date, e.SlotNo)
		bySession[m] = append(bySession[m], e)
	}

	pipe := c.rdb.TxPipeline()
	for m, es := range bySession {
		body, err := json.Marshal(es)
		if err != nil {
			return err
		}
		pipe.Set(ctx, c.key(m), body, c.cfg.TTL)
		pipe.SAdd(ctx, c.indexKey(), m)
	}
	pipe.Expire(ctx, c.indexKey(), c.cfg.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns cached entries for the sessions matching date and slot; an
// empty date or zero slot matches all.  Sessions are returned in date then
// slot order.  found is false when nothing matches.
func (c *HallplanCache) Get(ctx context.Context, date string, slotNo uint8) (entries []seating.ListingEntry, found bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	members, err := c.rdb.SMembers(ctx, c.indexKey()).Result()
	if err != nil {
		return nil, false, err
	}
	members = matchSessions(members, date, slotNo)
	if len(members) == 0 {
		return nil, false, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = c.key(m)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, false, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // expired since the index was read
		}
		var es []seating.ListingEntry
		if err := json.Unmarshal([]byte(s), &es); err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		entries = append(entries, es...)
		found = true
	}
	return entries, found, nil
}

// Invalidate drops the cached listing for one session.
func (c *HallplanCache) Invalidate(ctx context.Context, date string, slotNo uint8) error {
	if c == nil {
		return nil
	}
	m := sessionMember(date, slotNo)
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, c.key(m))
	pipe.SRem(ctx, c.indexKey(), m)
	_, err := pipe.Exec(ctx)
	return err
}

// matchSessions filters "date:slot" members and sorts them by date, then
// numeric slot.
func matchSessions(members []string, date string, slotNo uint8) []string {
	type parsed struct {
		member string
		date   string
		slot   int
	}
	var out []parsed
	for _, m := range members {
		i := strings.LastIndexByte(m, ':')
		if i < 0 {
			continue
		}
		slot, err := strconv.Atoi(m[i+1:])
		if err != nil {
			continue
		}
		d := m[:i]
		if date != "" && d != date {
			continue
		}
		if slotNo != 0 && slot != int(slotNo) {
			continue
		}
		out = append(out, parsed{member: m, date: d, slot: slot})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].date != out[j].date {
			return out[i].date < out[j].date
		}
		return out[i].slot < out[j].slot
	})
	res := make([]string, len(out))
	for i, p := range out {
		res[i] = p.member
	}
	return res
}
