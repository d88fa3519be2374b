// README: Schedule resolution: static config first, then Redis cache, then the Postgres catalog.
package pricing

import (
	"context"
	"log/slog"
	"sort"

	"farefloor/internal/types"
)

// Catalog is the authoritative tenant schedule source (Store in production).
type Catalog interface {
	GetSchedule(ctx context.Context, tenant types.ID) (RateSchedule, error)
	ListTenants(ctx context.Context) ([]types.ID, error)
}

// ScheduleCache is a read-through cache in front of a Catalog (Cache in production).
type ScheduleCache interface {
	Get(ctx context.Context, tenant types.ID) (RateSchedule, bool, error)
	Set(ctx context.Context, tenant types.ID, sched RateSchedule) error
}

// Schedules resolves a tenant's RateSchedule. It is configured once at startup
// and only read afterwards.
type Schedules struct {
	static  map[types.ID]RateSchedule
	catalog Catalog
	cache   ScheduleCache
	log     *slog.Logger
}

func NewSchedules(static map[types.ID]RateSchedule, log *slog.Logger) *Schedules {
	copied := make(map[types.ID]RateSchedule, len(static))
	for k, v := range static {
		copied[k] = v
	}
	if log == nil {
		log = slog.Default()
	}
	return &Schedules{static: copied, log: log}
}

// WithCatalog enables lookups of tenants not present in static config.
func (r *Schedules) WithCatalog(c Catalog) *Schedules {
	r.catalog = c
	return r
}

// WithCache puts c in front of the catalog. It has no effect without a catalog.
func (r *Schedules) WithCache(c ScheduleCache) *Schedules {
	r.cache = c
	return r
}

func (r *Schedules) Resolve(ctx context.Context, tenant types.ID) (RateSchedule, error) {
	if tenant == "" {
		tenant = DefaultTenant
	}
	if s, ok := r.static[tenant]; ok {
		return s, nil
	}
	if r.catalog == nil {
		return RateSchedule{}, ErrScheduleNotFound
	}

	if r.cache != nil {
		s, ok, err := r.cache.Get(ctx, tenant)
		if err != nil {
			// Cache outages degrade to the catalog.
			r.log.WarnContext(ctx, "schedule cache get failed", "tenant", string(tenant), "error", err)
		} else if ok {
			return s, nil
		}
	}

	s, err := r.catalog.GetSchedule(ctx, tenant)
	if err != nil {
		return RateSchedule{}, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, tenant, s); err != nil {
			r.log.WarnContext(ctx, "schedule cache set failed", "tenant", string(tenant), "error", err)
		}
	}
	return s, nil
}

// Tenants lists static and catalog tenants, sorted.
func (r *Schedules) Tenants(ctx context.Context) ([]types.ID, error) {
	seen := make(map[types.ID]struct{}, len(r.static))
	out := make([]types.ID, 0, len(r.static))
	for k := range r.static {
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if r.catalog != nil {
		ids, err := r.catalog.ListTenants(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
