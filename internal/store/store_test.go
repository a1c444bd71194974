package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

type listResult struct {
	resp domain.ListResponse
	err  error
}

type detailResult struct {
	listing domain.Listing
	err     error
}

type tagKey struct{}

func tagged(tag string) context.Context {
	return context.WithValue(context.Background(), tagKey{}, tag)
}

func tagOf(ctx context.Context) string {
	tag, _ := ctx.Value(tagKey{}).(string)
	return tag
}

// gatedSource blocks every call until the test pushes a result on the gate
// named by the call's context tag, so tests control settlement order.
type gatedSource struct {
	mu        sync.Mutex
	lists     map[string]chan listResult
	details   map[string]chan detailResult
	requested []string
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		lists:   make(map[string]chan listResult),
		details: make(map[string]chan detailResult),
	}
}

func (g *gatedSource) listGate(tag string) chan listResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.lists[tag]
	if !ok {
		ch = make(chan listResult)
		g.lists[tag] = ch
	}
	return ch
}

func (g *gatedSource) detailGate(tag string) chan detailResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.details[tag]
	if !ok {
		ch = make(chan detailResult)
		g.details[tag] = ch
	}
	return ch
}

func (g *gatedSource) ListCampers(ctx context.Context) (domain.ListResponse, error) {
	select {
	case r := <-g.listGate(tagOf(ctx)):
		return r.resp, r.err
	case <-ctx.Done():
		return domain.ListResponse{}, ctx.Err()
	}
}

func (g *gatedSource) GetCamper(ctx context.Context, id string) (domain.Listing, error) {
	g.mu.Lock()
	g.requested = append(g.requested, id)
	g.mu.Unlock()
	select {
	case r := <-g.detailGate(tagOf(ctx)):
		return r.listing, r.err
	case <-ctx.Done():
		return domain.Listing{}, ctx.Err()
	}
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not settle")
	}
}

func listings(ids ...string) []domain.Listing {
	out := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Listing{ID: domain.ID(id), Name: "camper " + id})
	}
	return out
}

func TestInitialState(t *testing.T) {
	s := New(newGatedSource())
	assert.Equal(t, domain.StatusIdle, s.Status())
	assert.Empty(t, s.Error())
	assert.NotNil(t, s.Items())
	assert.Empty(t, s.Items())
	assert.Equal(t, domain.StatusIdle, s.DetailStatus("1"))
	_, ok := s.Detail("1")
	assert.False(t, ok)
}

func TestFetchListingsSuccess(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListings(context.Background())
	assert.Equal(t, domain.StatusLoading, s.Status())
	assert.Empty(t, s.Items())

	src.listGate("") <- listResult{resp: domain.ListResponse{Total: 2, Items: listings("1", "2")}}
	waitDone(t, done)

	snap := s.Snapshot()
	assert.Equal(t, domain.StatusSucceeded, snap.Status)
	assert.Empty(t, snap.Error)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, domain.ID("1"), snap.Items[0].ID)
}

func TestFetchListingsNilItemsBecomeEmpty(t *testing.T) {
	src := newGatedSource()
	s := New(src)
	done := s.FetchListings(context.Background())
	src.listGate("") <- listResult{}
	waitDone(t, done)

	assert.Equal(t, domain.StatusSucceeded, s.Status())
	assert.NotNil(t, s.Items())
	assert.Empty(t, s.Items())
}

func TestFetchListingsFailure(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListings(context.Background())
	src.listGate("") <- listResult{resp: domain.ListResponse{Items: listings("1")}}
	waitDone(t, done)

	done = s.FetchListings(context.Background())
	src.listGate("") <- listResult{err: errors.New("Network Error")}
	waitDone(t, done)

	assert.Equal(t, domain.StatusFailed, s.Status())
	assert.Equal(t, "Network Error", s.Error())
	assert.Empty(t, s.Items())
}

func TestFetchListingsFailureWithoutMessage(t *testing.T) {
	src := newGatedSource()
	s := New(src)
	done := s.FetchListings(context.Background())
	src.listGate("") <- listResult{err: errors.New("")}
	waitDone(t, done)

	assert.Equal(t, DefaultListError, s.Error())
}

func TestRefetchClearsErrorOnStart(t *testing.T) {
	src := newGatedSource()
	s := New(src)
	done := s.FetchListings(context.Background())
	src.listGate("") <- listResult{err: errors.New("boom")}
	waitDone(t, done)
	require.Equal(t, "boom", s.Error())

	done = s.FetchListings(context.Background())
	assert.Empty(t, s.Error())
	assert.Equal(t, domain.StatusLoading, s.Status())
	src.listGate("") <- listResult{resp: domain.ListResponse{Items: listings("3")}}
	waitDone(t, done)
	assert.Equal(t, domain.StatusSucceeded, s.Status())
}

func TestStaleListFetchIsDiscarded(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	first := s.FetchListings(tagged("first"))
	second := s.FetchListings(tagged("second"))

	src.listGate("second") <- listResult{resp: domain.ListResponse{Items: listings("new")}}
	waitDone(t, second)
	src.listGate("first") <- listResult{resp: domain.ListResponse{Items: listings("old", "older")}}
	waitDone(t, first)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, domain.ID("new"), s.Items()[0].ID)
	assert.Equal(t, domain.StatusSucceeded, s.Status())
}

func TestStaleListFailureDoesNotOverwrite(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	first := s.FetchListings(tagged("first"))
	second := s.FetchListings(tagged("second"))

	src.listGate("second") <- listResult{resp: domain.ListResponse{Items: listings("1", "2")}}
	waitDone(t, second)
	src.listGate("first") <- listResult{err: errors.New("late failure")}
	waitDone(t, first)

	assert.Equal(t, domain.StatusSucceeded, s.Status())
	assert.Empty(t, s.Error())
	assert.Len(t, s.Items(), 2)
}

func TestOlderFetchSettlingFirstIsStillDiscarded(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	first := s.FetchListings(tagged("first"))
	second := s.FetchListings(tagged("second"))

	src.listGate("first") <- listResult{resp: domain.ListResponse{Items: listings("old")}}
	waitDone(t, first)
	assert.Equal(t, domain.StatusLoading, s.Status())
	assert.Empty(t, s.Items())

	src.listGate("second") <- listResult{resp: domain.ListResponse{Items: listings("new")}}
	waitDone(t, second)
	assert.Equal(t, domain.ID("new"), s.Items()[0].ID)
}

func TestCancelledFetchSettlesAsFailed(t *testing.T) {
	s := New(newGatedSource())
	ctx, cancel := context.WithCancel(context.Background())
	done := s.FetchListings(ctx)
	cancel()
	waitDone(t, done)

	assert.Equal(t, domain.StatusFailed, s.Status())
	assert.Equal(t, context.Canceled.Error(), s.Error())
}

func TestFetchDetailSuccess(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), 7)
	assert.Equal(t, domain.StatusLoading, s.DetailStatus("7"))
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "7", Name: "Kuga"}}
	waitDone(t, done)

	l, ok := s.Detail(7)
	require.True(t, ok)
	assert.Equal(t, "Kuga", l.Name)
	assert.Equal(t, domain.StatusSucceeded, s.DetailStatus("7"))
	assert.Empty(t, s.DetailError("7"))
	assert.Equal(t, []string{"7"}, src.requested)
}

func TestFetchDetailFailureKeepsCachedDetail(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), "7")
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "7", Name: "Kuga"}}
	waitDone(t, done)

	done = s.FetchListingDetail(context.Background(), "7")
	src.detailGate("") <- detailResult{err: errors.New("request failed with status 500: oops")}
	waitDone(t, done)

	assert.Equal(t, domain.StatusFailed, s.DetailStatus("7"))
	assert.Equal(t, "request failed with status 500: oops", s.DetailError("7"))
	l, ok := s.Detail("7")
	require.True(t, ok)
	assert.Equal(t, "Kuga", l.Name)
}

func TestFetchDetailFailureWithoutMessage(t *testing.T) {
	src := newGatedSource()
	s := New(src)
	done := s.FetchListingDetail(context.Background(), "1")
	src.detailGate("") <- detailResult{err: errors.New("")}
	waitDone(t, done)
	assert.Equal(t, DefaultDetailError, s.DetailError("1"))
}

func TestFetchDetailDoesNotTouchOtherIDs(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), "1")
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "1"}}
	waitDone(t, done)

	done = s.FetchListingDetail(context.Background(), "2")
	src.detailGate("") <- detailResult{err: errors.New("nope")}
	waitDone(t, done)

	assert.Equal(t, domain.StatusSucceeded, s.DetailStatus("1"))
	assert.Empty(t, s.DetailError("1"))
	assert.Equal(t, domain.StatusFailed, s.DetailStatus("2"))
}

func TestMalformedDetailIsDropped(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), "5")
	src.detailGate("") <- detailResult{listing: domain.Listing{Name: "no id"}}
	waitDone(t, done)

	_, ok := s.Detail("5")
	assert.False(t, ok)
	assert.Empty(t, s.DetailError("5"))
	assert.Equal(t, domain.StatusIdle, s.DetailStatus("5"))
}

func TestMalformedDetailRestoresPreviousStatus(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), "5")
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "5"}}
	waitDone(t, done)

	done = s.FetchListingDetail(context.Background(), "5")
	src.detailGate("") <- detailResult{listing: domain.Listing{}}
	waitDone(t, done)

	assert.Equal(t, domain.StatusSucceeded, s.DetailStatus("5"))
}

func TestDetailStoredUnderResponseID(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), "5")
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "6", Name: "other"}}
	waitDone(t, done)

	l, ok := s.Detail("6")
	require.True(t, ok)
	assert.Equal(t, "other", l.Name)
	assert.Equal(t, domain.StatusSucceeded, s.DetailStatus("6"))
	assert.Equal(t, domain.StatusIdle, s.DetailStatus("5"))
	_, ok = s.Detail("5")
	assert.False(t, ok)
}

func TestMismatchedDetailDoesNotOverrideInFlightFetch(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	other := s.FetchListingDetail(tagged("six"), "6")
	mismatched := s.FetchListingDetail(tagged("five"), "5")

	src.detailGate("five") <- detailResult{listing: domain.Listing{ID: "6", Name: "stray"}}
	waitDone(t, mismatched)
	assert.Equal(t, domain.StatusLoading, s.DetailStatus("6"))
	_, ok := s.Detail("6")
	assert.False(t, ok)

	src.detailGate("six") <- detailResult{err: errors.New("boom")}
	waitDone(t, other)
	assert.Equal(t, domain.StatusFailed, s.DetailStatus("6"))
	assert.Equal(t, "boom", s.DetailError("6"))
	assert.Equal(t, domain.StatusIdle, s.DetailStatus("5"))
}

func TestDetailIDIsTrimmed(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	done := s.FetchListingDetail(context.Background(), " 7 ")
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "7 ", Name: "padded"}}
	waitDone(t, done)

	assert.Equal(t, []string{"7"}, src.requested)
	l, ok := s.Detail("7")
	require.True(t, ok)
	assert.Equal(t, domain.ID("7"), l.ID)
	assert.Equal(t, domain.StatusSucceeded, s.DetailStatus(" 7"))
}

func TestStaleDetailFetchIsDiscarded(t *testing.T) {
	src := newGatedSource()
	s := New(src)

	first := s.FetchListingDetail(tagged("first"), "1")
	second := s.FetchListingDetail(tagged("second"), "1")

	src.detailGate("second") <- detailResult{listing: domain.Listing{ID: "1", Name: "latest"}}
	waitDone(t, second)
	src.detailGate("first") <- detailResult{err: errors.New("late failure")}
	waitDone(t, first)

	assert.Equal(t, domain.StatusSucceeded, s.DetailStatus("1"))
	assert.Empty(t, s.DetailError("1"))
	l, _ := s.Detail("1")
	assert.Equal(t, "latest", l.Name)
}

func TestVersionAndListeners(t *testing.T) {
	src := newGatedSource()
	s := New(src)
	var calls int32
	s.OnChange(func() { atomic.AddInt32(&calls, 1) })
	s.OnChange(nil)

	v0 := s.Version()
	done := s.FetchListings(context.Background())
	v1 := s.Version()
	src.listGate("") <- listResult{resp: domain.ListResponse{Items: listings("1")}}
	waitDone(t, done)

	assert.Greater(t, v1, v0)
	assert.Greater(t, s.Version(), v1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	vDetail := s.Version()
	done = s.FetchListingDetail(context.Background(), "1")
	src.detailGate("") <- detailResult{listing: domain.Listing{ID: "1"}}
	waitDone(t, done)
	assert.Equal(t, vDetail, s.Version(), "detail fetches do not touch the item list")
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestItemsReturnsCopy(t *testing.T) {
	src := newGatedSource()
	s := New(src)
	done := s.FetchListings(context.Background())
	src.listGate("") <- listResult{resp: domain.ListResponse{Items: listings("1")}}
	waitDone(t, done)

	items := s.Items()
	items[0].Name = "mutated"
	assert.Equal(t, "camper 1", s.Items()[0].Name)
}
