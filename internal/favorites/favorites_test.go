package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	s := New(nil)

	assert.True(t, s.Toggle("3"))
	assert.True(t, s.Toggle(1))
	assert.True(t, s.Has("1"))
	assert.True(t, s.Has(1))
	assert.Equal(t, []string{"3", "1"}, s.IDs())

	assert.False(t, s.Toggle("3"))
	assert.False(t, s.Has("3"))
	assert.Equal(t, []string{"1"}, s.IDs())
	assert.Equal(t, 1, s.Len())
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	s := New(nil)
	s.Toggle("a")
	s.Toggle("b")
	before := s.IDs()

	s.Toggle("c")
	s.Toggle("c")
	assert.Equal(t, before, s.IDs())
}

func TestToggleIgnoresEmptyID(t *testing.T) {
	s := New(nil)
	assert.False(t, s.Toggle(""))
	assert.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	s := New(nil)
	s.Toggle("1")
	s.Toggle("2")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.IDs())
	assert.False(t, s.Has("1"))
}

func TestIDsReturnsCopy(t *testing.T) {
	s := New(nil)
	s.Toggle("1")
	ids := s.IDs()
	ids[0] = "x"
	assert.Equal(t, []string{"1"}, s.IDs())
}

func TestNilPersisterIsReady(t *testing.T) {
	s := New(nil)
	select {
	case <-s.Ready():
	default:
		t.Fatal("set without persister should be ready")
	}
	require.NoError(t, s.Rehydrate(context.Background()))
	require.NoError(t, s.Close())
}

func TestRehydrate(t *testing.T) {
	p := NewMemoryPersister("2", "", "5", "2")
	s := New(p)

	select {
	case <-s.Ready():
		t.Fatal("ready before rehydration")
	default:
	}

	require.NoError(t, s.Rehydrate(context.Background()))
	<-s.Ready()
	assert.Equal(t, []string{"2", "5"}, s.IDs())
	assert.Equal(t, 0, p.Saves(), "rehydration does not save")
}

func TestRehydrateFailureKeepsSetAndIsReady(t *testing.T) {
	p := NewMemoryPersister()
	p.LoadErr = errors.New("disk gone")
	s := New(p)

	err := s.Rehydrate(context.Background())
	require.Error(t, err)
	<-s.Ready()
	assert.Equal(t, 0, s.Len())

	s.Toggle("1")
	assert.True(t, s.Has("1"))
}

func TestFailedLoadDoesNotOverwriteStoredFavorites(t *testing.T) {
	p := NewMemoryPersister("1", "2", "3")
	p.LoadErr = errors.New("locked")
	s := New(p)

	require.Error(t, s.Rehydrate(context.Background()))
	s.Toggle("42")
	s.Clear()
	s.Flush()
	assert.Equal(t, 0, p.Saves())

	p.LoadErr = nil
	stored, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, stored)
}

func TestSavesResumeAfterSuccessfulRehydrate(t *testing.T) {
	p := NewMemoryPersister("1", "2")
	p.LoadErr = errors.New("locked")
	s := New(p)
	require.Error(t, s.Rehydrate(context.Background()))

	p.LoadErr = nil
	require.NoError(t, s.Rehydrate(context.Background()))
	assert.Equal(t, []string{"1", "2"}, s.IDs())

	s.Toggle("3")
	s.Flush()
	stored, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, stored)
}

func TestMutationsArePersisted(t *testing.T) {
	p := NewMemoryPersister()
	s := New(p)
	require.NoError(t, s.Rehydrate(context.Background()))

	s.Toggle("1")
	s.Toggle("2")
	s.Toggle("1")
	s.Flush()

	stored, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, stored)
}

func TestClearIsPersisted(t *testing.T) {
	p := NewMemoryPersister("1", "2")
	s := New(p)
	require.NoError(t, s.Rehydrate(context.Background()))
	s.Clear()
	s.Flush()

	stored, _ := p.Load(context.Background())
	assert.Empty(t, stored)
}

func TestSurvivesReopen(t *testing.T) {
	p := NewMemoryPersister()
	first := New(p)
	require.NoError(t, first.Rehydrate(context.Background()))
	first.Toggle("7")
	first.Toggle("3")
	require.NoError(t, first.Close())

	second := New(p)
	require.NoError(t, second.Rehydrate(context.Background()))
	assert.Equal(t, []string{"7", "3"}, second.IDs())
}

func TestSaveFailureIsReported(t *testing.T) {
	p := NewMemoryPersister()
	p.SaveErr = errors.New("read-only")
	s := New(p)

	var mu sync.Mutex
	var reported []error
	s.OnSaveError(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	})

	s.Toggle("1")
	s.Flush()

	assert.True(t, s.Has("1"), "in-memory set stays usable")
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reported)
	assert.EqualError(t, reported[0], "read-only")
}

func TestLastWriteWins(t *testing.T) {
	p := NewMemoryPersister()
	s := New(p)
	for i := 0; i < 50; i++ {
		s.Toggle(i)
	}
	s.Flush()

	stored, _ := p.Load(context.Background())
	assert.Equal(t, s.IDs(), stored)
}

func TestConcurrentToggles(t *testing.T) {
	s := New(NewMemoryPersister())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Toggle(i)
			_ = s.Has(i)
		}(i)
	}
	wg.Wait()
	s.Flush()
	assert.Equal(t, 20, s.Len())
}

func TestMutationsAfterCloseAreNotSaved(t *testing.T) {
	p := NewMemoryPersister()
	s := New(p)
	require.NoError(t, s.Rehydrate(context.Background()))
	s.Toggle("1")
	require.NoError(t, s.Close())
	saves := p.Saves()

	s.Toggle("2")
	s.Clear()
	s.Flush()
	assert.Equal(t, saves, p.Saves())
	assert.Equal(t, 0, s.Len(), "in-memory set still changes")
	require.NoError(t, s.Close())

	stored, _ := p.Load(context.Background())
	assert.Equal(t, []string{"1"}, stored)
}

func TestCloseRacesWithToggles(t *testing.T) {
	s := New(NewMemoryPersister())
	require.NoError(t, s.Rehydrate(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Toggle(i)
		}(i)
	}
	require.NoError(t, s.Close())
	wg.Wait()
	s.Flush()
	assert.Equal(t, 20, s.Len())
}
