// internal/assets/resolver.go
//
// Resolution chain for media keys.
//
// Order, short-circuiting on the first Found:
//   1. cache (positive or negative entry)
//   2. local sources, every candidate (skipped for sounds when SkipLocalSounds)
//   3. remote sources, every candidate
//   4. all candidates exhausted: memoize NotFound
//
// Cache entries are never evicted. Negative entries live for the process
// lifetime unless NegativeTTL is set, so an asset uploaded after a miss needs
// a restart, a TTL, or a Forget call before it is served.
//
// Remote attempts are each bounded by the source's own timeout, and the
// remote tier as a whole by RemoteBudget; once the budget is spent the
// remaining candidates are skipped and the key counts as a miss.
//
// Concurrent first-time lookups of one key share a single walk via
// singleflight; the walk is detached from the caller's cancellation so an
// abandoned request cannot poison the cache.

package assets

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/NRay7882/astrogoblin-wordle/internal/store"
)

// Entry is a memoized resolution: Found with its asset, or NotFound.
type Entry struct {
	Found    bool
	Asset    Asset
	StoredAt time.Time
}

// Options configures a Resolver.
type Options struct {
	Local           []Source
	Remote          []Source
	SkipLocalSounds bool
	NegativeTTL     time.Duration // 0: negative entries never expire
	RemoteBudget    time.Duration // total time for the remote tier; 0: unbounded
	Cache           store.Store[Entry]
	Now             func() time.Time
}

// Resolver resolves keys through its sources, memoizing every outcome.
type Resolver struct {
	local           []Source
	remote          []Source
	skipLocalSounds bool
	negativeTTL     time.Duration
	remoteBudget    time.Duration
	cache           store.Store[Entry]
	now             func() time.Time
	group           singleflight.Group
}

// NewResolver builds a Resolver; a nil cache gets an in-memory store.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		local:           opts.Local,
		remote:          opts.Remote,
		skipLocalSounds: opts.SkipLocalSounds,
		negativeTTL:     opts.NegativeTTL,
		remoteBudget:    opts.RemoteBudget,
		cache:           opts.Cache,
		now:             opts.Now,
	}
	if r.cache == nil {
		r.cache = store.NewMemoryStore[Entry]()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Resolve returns the asset for key and whether it exists.
func (r *Resolver) Resolve(ctx context.Context, key Key) (Asset, bool) {
	if e, ok := r.cached(key); ok {
		return e.Asset, e.Found
	}

	v, _, _ := r.group.Do(key.String(), func() (any, error) {
		if e, ok := r.cached(key); ok {
			return e, nil
		}
		e := r.walk(context.WithoutCancel(ctx), key)
		r.cache.Put(key.String(), e)
		return e, nil
	})
	e := v.(Entry)
	return e.Asset, e.Found
}

// Forget drops any memoized result for key so the next Resolve walks the
// chain again.
func (r *Resolver) Forget(key Key) {
	r.cache.Delete(key.String())
}

// CacheLen reports how many keys are memoized.
func (r *Resolver) CacheLen() int { return r.cache.Len() }

func (r *Resolver) cached(key Key) (Entry, bool) {
	e, ok := r.cache.Get(key.String())
	if !ok {
		return Entry{}, false
	}
	if !e.Found && r.negativeTTL > 0 && r.now().Sub(e.StoredAt) >= r.negativeTTL {
		return Entry{}, false
	}
	return e, true
}

func (r *Resolver) walk(ctx context.Context, key Key) Entry {
	candidates := key.Candidates()

	if key.Kind != KindSound || !r.skipLocalSounds {
		if e, ok := r.walkTier(ctx, key, r.local, candidates); ok {
			return e
		}
	}
	if len(r.remote) > 0 {
		rctx := ctx
		if r.remoteBudget > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(ctx, r.remoteBudget)
			defer cancel()
		}
		if e, ok := r.walkTier(rctx, key, r.remote, candidates); ok {
			return e
		}
	}
	log.Info().Str("key", key.String()).Msg("asset not found; caching negative result")
	return Entry{Found: false, StoredAt: r.now()}
}

// walkTier tries every candidate on every source of one tier, stopping at
// the first Found or when ctx is done.
func (r *Resolver) walkTier(ctx context.Context, key Key, tier []Source, candidates []string) (Entry, bool) {
	for _, src := range tier {
		for _, name := range candidates {
			if err := ctx.Err(); err != nil {
				log.Warn().Err(err).Str("key", key.String()).Str("source", src.Name()).Msg("asset lookup budget exhausted")
				return Entry{}, false
			}
			res := src.Fetch(ctx, key.Kind, name)
			switch res.Status {
			case Found:
				log.Debug().Str("key", key.String()).Str("source", src.Name()).Str("candidate", name).Msg("asset resolved")
				return Entry{Found: true, Asset: res.Asset, StoredAt: r.now()}, true
			case TransportError:
				log.Warn().Err(res.Err).Str("key", key.String()).Str("source", src.Name()).Str("candidate", name).Msg("asset fetch failed")
			default:
				log.Debug().Str("key", key.String()).Str("source", src.Name()).Str("candidate", name).Msg("asset miss")
			}
		}
	}
	return Entry{}, false
}
