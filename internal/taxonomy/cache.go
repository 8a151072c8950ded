package taxonomy

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/openparcel/parcelkit/internal/domain"
)

// Cache memoizes taxonomy option lists per key until Invalidate. Concurrent
// requests for the same key before the first fetch resolves share a single
// upstream call. Fetch failures are returned to every waiter and nothing is
// cached for that key; the cache never retries on its own.
type Cache struct {
	source Source
	group  singleflight.Group

	mu       sync.RWMutex
	families []domain.Family
	loaded   bool
	types    map[string][]domain.LandUseType
	products map[string][]domain.Product
}

func NewCache(source Source) *Cache {
	return &Cache{
		source:   source,
		types:    make(map[string][]domain.LandUseType),
		products: make(map[string][]domain.Product),
	}
}

// Families returns the family option list, fetching it at most once.
func (c *Cache) Families(ctx context.Context) ([]domain.Family, error) {
	c.mu.RLock()
	if c.loaded {
		cached := c.families
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("families", func() (any, error) {
		c.mu.RLock()
		if c.loaded {
			cached := c.families
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		records, err := c.source.FetchFamilies(ctx)
		if err != nil {
			return nil, err
		}
		families := normalizeFamilies(records)

		c.mu.Lock()
		c.families = families
		c.loaded = true
		c.mu.Unlock()
		return families, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Family), nil
}

// Types returns the type option list for a family, fetching each family's
// list at most once.
func (c *Cache) Types(ctx context.Context, familyID string) ([]domain.LandUseType, error) {
	c.mu.RLock()
	cached, ok := c.types[familyID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do("types:"+familyID, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.types[familyID]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		records, err := c.source.FetchTypes(ctx, familyID)
		if err != nil {
			return nil, err
		}
		types := normalizeTypes(records, familyID)

		c.mu.Lock()
		c.types[familyID] = types
		c.mu.Unlock()
		return types, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.LandUseType), nil
}

// Products returns the product option list for a type, fetching each type's
// list at most once.
func (c *Cache) Products(ctx context.Context, typeID string) ([]domain.Product, error) {
	c.mu.RLock()
	cached, ok := c.products[typeID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do("products:"+typeID, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.products[typeID]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		records, err := c.source.FetchProducts(ctx, typeID)
		if err != nil {
			return nil, err
		}
		products := normalizeProducts(records, typeID)

		c.mu.Lock()
		c.products[typeID] = products
		c.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Invalidate drops every memoized list. In-flight fetches still complete and
// cache their result; that result is simply superseded on the next fetch.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.families = nil
	c.loaded = false
	c.types = make(map[string][]domain.LandUseType)
	c.products = make(map[string][]domain.Product)
	c.mu.Unlock()
}
