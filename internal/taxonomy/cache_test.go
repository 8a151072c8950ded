package taxonomy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource counts fetches and optionally gates them so tests can pile up
// concurrent callers before the first fetch resolves.
type fakeSource struct {
	mu           sync.Mutex
	familyCalls  int
	typeCalls    map[string]int
	productCalls map[string]int

	families    []FamilyRecord
	types       map[string][]TypeRecord
	products    map[string][]ProductRecord
	familiesErr error

	gate chan struct{} // when non-nil, FetchFamilies blocks until closed
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		typeCalls:    make(map[string]int),
		productCalls: make(map[string]int),
		types:        make(map[string][]TypeRecord),
		products:     make(map[string][]ProductRecord),
	}
}

func (s *fakeSource) FetchFamilies(ctx context.Context) ([]FamilyRecord, error) {
	s.mu.Lock()
	s.familyCalls++
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if s.familiesErr != nil {
		return nil, s.familiesErr
	}
	return s.families, nil
}

func (s *fakeSource) FetchTypes(ctx context.Context, familyID string) ([]TypeRecord, error) {
	s.mu.Lock()
	s.typeCalls[familyID]++
	s.mu.Unlock()
	return s.types[familyID], nil
}

func (s *fakeSource) FetchProducts(ctx context.Context, typeID string) ([]ProductRecord, error) {
	s.mu.Lock()
	s.productCalls[typeID]++
	s.mu.Unlock()
	return s.products[typeID], nil
}

func standardSource() *fakeSource {
	s := newFakeSource()
	s.families = []FamilyRecord{
		{FamilyID: "f1", Code: "RES", Name: "Residential"},
		{ID: "f2", Code: "COM", Name: "Commercial"}, // alternate id key
	}
	s.types["f1"] = []TypeRecord{
		{TypeID: "t1", Code: "SFD", Name: "Single Family Detached"},
		{SubtypeID: "t2", Code: "TH", Name: "Townhome"}, // alternate id key
	}
	s.types["f2"] = []TypeRecord{
		{TypeID: "t3", Code: "RET", Name: "Retail"},
	}
	s.products["t1"] = []ProductRecord{
		{ProductID: "p1", Code: "50x120", Name: "50' Lot"},
		{ID: "p2", Code: "60x120", Name: "60' Lot"},
	}
	// t2 and t3 offer no products
	return s
}

func TestCache_FamiliesFetchedOnce(t *testing.T) {
	src := standardSource()
	cache := NewCache(src)
	ctx := context.Background()

	first, err := cache.Families(ctx)
	require.NoError(t, err)
	second, err := cache.Families(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, src.familyCalls)
	assert.Equal(t, first, second)
}

func TestCache_TypesKeyedByFamily(t *testing.T) {
	src := standardSource()
	cache := NewCache(src)
	ctx := context.Background()

	t1, err := cache.Types(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, t1, 2)
	assert.Equal(t, "t2", t1[1].ID, "subtype_id accepted as the id key")
	assert.Equal(t, "f1", t1[1].FamilyID)

	_, err = cache.Types(ctx, "f2")
	require.NoError(t, err)
	_, err = cache.Types(ctx, "f1")
	require.NoError(t, err)

	assert.Equal(t, 1, src.typeCalls["f1"])
	assert.Equal(t, 1, src.typeCalls["f2"])
}

func TestCache_MalformedRecordsDropped(t *testing.T) {
	src := newFakeSource()
	src.families = []FamilyRecord{
		{FamilyID: "f1", Name: "Residential"},
		{FamilyID: "", Name: "No ID"},
		{FamilyID: "f3", Name: "   "},
	}
	cache := NewCache(src)

	families, err := cache.Families(context.Background())
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "f1", families[0].ID)
}

func TestCache_SingleFlight(t *testing.T) {
	src := standardSource()
	src.gate = make(chan struct{})
	cache := NewCache(src)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			families, err := cache.Families(ctx)
			results[i] = len(families)
			errs[i] = err
		}(i)
	}

	close(src.gate)
	wg.Wait()

	assert.Equal(t, 1, src.familyCalls, "gated callers share one upstream fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 2, results[i], "every waiter sees the same result")
	}
}

func TestCache_FetchErrorNotCached(t *testing.T) {
	src := standardSource()
	src.familiesErr = errors.New("upstream unavailable")
	cache := NewCache(src)
	ctx := context.Background()

	_, err := cache.Families(ctx)
	require.Error(t, err)

	src.familiesErr = nil
	families, err := cache.Families(ctx)
	require.NoError(t, err)
	assert.Len(t, families, 2)
	assert.Equal(t, 2, src.familyCalls, "failed fetch is retried by the next caller")
}

func TestCache_Invalidate(t *testing.T) {
	src := standardSource()
	cache := NewCache(src)
	ctx := context.Background()

	_, err := cache.Families(ctx)
	require.NoError(t, err)
	_, err = cache.Types(ctx, "f1")
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Families(ctx)
	require.NoError(t, err)
	_, err = cache.Types(ctx, "f1")
	require.NoError(t, err)

	assert.Equal(t, 2, src.familyCalls)
	assert.Equal(t, 2, src.typeCalls["f1"])
}
