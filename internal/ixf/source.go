package ixf

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"ixfguard/internal/config"
	"ixfguard/internal/support"
)

// ErrSnapshotUnavailable wraps every reason a usable snapshot could not be
// produced: no export URL, a cache miss, a store failure or a malformed
// document.
var ErrSnapshotUnavailable = errors.New("ix-f snapshot unavailable")

// Source reads cached member lists and hands out decoded snapshots. Decoded
// snapshots are memoised by document content, so a refreshed document is
// decoded again while repeated reads of the same one are not.
type Source struct {
	store     Store
	keyPrefix string
	ttl       func() time.Duration

	decoded *lru.Cache[uint64, *Snapshot]
	loads   singleflight.Group
}

func NewSource(store Store, cfg config.IXF) (*Source, error) {
	decoded, err := lru.New[uint64, *Snapshot](cfg.LocalCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache: %w", err)
	}
	return &Source{
		store:     store,
		keyPrefix: cfg.CacheKeyPrefix,
		ttl:       config.GetSnapshotTTL,
		decoded:   decoded,
	}, nil
}

// Publish stores a raw member list for url. The document is stored as is so
// that readers see exactly what the exchange exported, valid or not.
func (s *Source) Publish(ctx context.Context, url string, doc []byte) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("%w: no member list url", ErrSnapshotUnavailable)
	}
	if err := s.store.Set(ctx, CacheKey(s.keyPrefix, url), doc, s.ttl()); err != nil {
		return err
	}
	log.Debug("IX-F member list cached", "url", url, "bytes", len(doc))
	return nil
}

// Snapshot returns the decoded member list cached for url. Every failure
// wraps ErrSnapshotUnavailable together with the underlying cause.
func (s *Source) Snapshot(ctx context.Context, url string) (*Snapshot, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("%w: no member list url", ErrSnapshotUnavailable)
	}
	key := CacheKey(s.keyPrefix, url)

	result, err, _ := s.loads.Do(key, func() (interface{}, error) {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}

		sum := support.HashBytes(raw)
		if snap, ok := s.decoded.Get(sum); ok {
			return snap, nil
		}

		snap, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		s.decoded.Add(sum, snap)
		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotUnavailable, err)
	}
	return result.(*Snapshot), nil
}

// PeerExists looks asn up in the member list cached for url.
func (s *Source) PeerExists(ctx context.Context, url string, asn uint32, ip4, ip6 netip.Addr) (bool, bool, error) {
	snap, err := s.Snapshot(ctx, url)
	if err != nil {
		return false, false, err
	}
	found4, found6 := snap.PeerExists(asn, ip4, ip6)
	return found4, found6, nil
}
