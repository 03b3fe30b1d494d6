package storage

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/tilawah/internal/repository"
)

type prefs struct {
	Theme string `json:"theme"`
	Size  int    `json:"size"`
}

func defaultPrefs() prefs { return prefs{Theme: "light", Size: 16} }

// failingRepo rejects every write
type failingRepo struct {
	*repository.MemoryRepository
}

func (failingRepo) Set(string, string) error { return errors.New("quota exceeded") }

// gatedRepo blocks the first armed Set inside the repository until release is closed
type gatedRepo struct {
	*repository.MemoryRepository
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func newGatedRepo() *gatedRepo {
	return &gatedRepo{
		MemoryRepository: repository.NewMemoryRepository(),
		entered:          make(chan struct{}),
		release:          make(chan struct{}),
	}
}

func (g *gatedRepo) Set(key, value string) error {
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return g.MemoryRepository.Set(key, value)
}

func newHub(t *testing.T, repo repository.Repository) (*Hub, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewHub(repo, logger), hook
}

func TestValue_DefaultWhenMissing(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemoryRepository())
	v := NewValue(hub.Open(), "settings", defaultPrefs)
	assert.Equal(t, defaultPrefs(), v.Get())
}

func TestValue_DefaultWhenCorrupt(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Set("settings", "{not json"))
	hub, hook := newHub(t, repo)

	v := NewValue(hub.Open(), "settings", defaultPrefs)

	assert.Equal(t, defaultPrefs(), v.Get())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestValue_UpdatePersists(t *testing.T) {
	repo := repository.NewMemoryRepository()
	hub, _ := newHub(t, repo)
	v := NewValue(hub.Open(), "settings", defaultPrefs)

	v.Update(func(p prefs) prefs {
		p.Theme = "dark"
		return p
	})

	raw, ok, err := repo.Get("settings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"theme":"dark","size":16}`, raw)

	reloaded := NewValue(hub.Open(), "settings", defaultPrefs)
	assert.Equal(t, "dark", reloaded.Get().Theme)
}

func TestValue_WriteFailureKeepsMemoryState(t *testing.T) {
	hub, hook := newHub(t, failingRepo{repository.NewMemoryRepository()})
	v := NewValue(hub.Open(), "settings", defaultPrefs)

	v.Set(prefs{Theme: "sepia", Size: 20})

	assert.Equal(t, "sepia", v.Get().Theme)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestValue_CrossContextLastWriterWins(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemoryRepository())
	tabA := NewValue(hub.Open(), "settings", defaultPrefs)
	tabB := NewValue(hub.Open(), "settings", defaultPrefs)

	var seen []prefs
	tabB.Subscribe(func(p prefs) { seen = append(seen, p) })

	tabA.Set(prefs{Theme: "dark", Size: 18})
	assert.Equal(t, "dark", tabB.Get().Theme)

	tabB.Set(prefs{Theme: "sepia", Size: 18})
	assert.Equal(t, "sepia", tabA.Get().Theme)
	assert.Equal(t, "sepia", tabB.Get().Theme)

	require.Len(t, seen, 2)
	assert.Equal(t, "dark", seen[0].Theme)
	assert.Equal(t, "sepia", seen[1].Theme)
}

func TestValue_RemovedKeyRevertsToDefault(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemoryRepository())
	tabA := hub.Open()
	v := NewValue(hub.Open(), "settings", defaultPrefs)
	v.Set(prefs{Theme: "dark"})

	require.NoError(t, tabA.RemoveItem("settings"))

	assert.Equal(t, defaultPrefs(), v.Get())
}

func TestValue_IgnoresUnparsableEvent(t *testing.T) {
	hub, hook := newHub(t, repository.NewMemoryRepository())
	tabA := hub.Open()
	v := NewValue(hub.Open(), "settings", defaultPrefs)
	v.Set(prefs{Theme: "dark"})

	require.NoError(t, tabA.SetItem("settings", "garbage"))

	assert.Equal(t, "dark", v.Get().Theme)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestValue_IgnoresOtherKeys(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemoryRepository())
	tabA := hub.Open()
	v := NewValue(hub.Open(), "settings", defaultPrefs)

	require.NoError(t, tabA.SetItem("notes", `{"theme":"dark"}`))

	assert.Equal(t, defaultPrefs(), v.Get())
}

func TestLocal_NoEchoAndClose(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemoryRepository())
	tabA := hub.Open()
	tabB := hub.Open()
	assert.Equal(t, 2, hub.Contexts())

	var gotA, gotB []Change
	tabA.OnStorage(func(c Change) { gotA = append(gotA, c) })
	cancelB := tabB.OnStorage(func(c Change) { gotB = append(gotB, c) })

	require.NoError(t, tabA.SetItem("k", "1"))
	assert.Empty(t, gotA)
	require.Len(t, gotB, 1)
	assert.Equal(t, tabA.ID(), gotB[0].Source)
	assert.Equal(t, "1", gotB[0].NewValue)

	cancelB()
	require.NoError(t, tabA.SetItem("k", "2"))
	assert.Len(t, gotB, 1)

	tabB.Close()
	assert.Equal(t, 1, hub.Contexts())
}

func TestLocal_FailedWriteIsNotPublished(t *testing.T) {
	hub, _ := newHub(t, failingRepo{repository.NewMemoryRepository()})
	tabA := hub.Open()
	tabB := hub.Open()

	called := false
	tabB.OnStorage(func(Change) { called = true })

	assert.Error(t, tabA.SetItem("k", "v"))
	assert.False(t, called)
}

func TestValue_ConcurrentWritersConverge(t *testing.T) {
	repo := newGatedRepo()
	hub, _ := newHub(t, repo)
	tabA := NewValue(hub.Open(), "settings", defaultPrefs)
	tabB := NewValue(hub.Open(), "settings", defaultPrefs)

	repo.armed.Store(true)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tabA.Set(prefs{Theme: "X"})
	}()
	<-repo.entered
	go func() {
		defer wg.Done()
		tabB.Set(prefs{Theme: "Y"})
	}()
	close(repo.release)
	wg.Wait()

	raw, ok, err := repo.Get("settings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"theme":"Y","size":0}`, raw)
	assert.Equal(t, "Y", tabA.Get().Theme)
	assert.Equal(t, "Y", tabB.Get().Theme)
}

func TestValue_ManyWritersSettleOnStoredValue(t *testing.T) {
	repo := repository.NewMemoryRepository()
	hub, _ := newHub(t, repo)
	tabs := []*Value[prefs]{
		NewValue(hub.Open(), "settings", defaultPrefs),
		NewValue(hub.Open(), "settings", defaultPrefs),
		NewValue(hub.Open(), "settings", defaultPrefs),
	}

	var wg sync.WaitGroup
	for i, tab := range tabs {
		wg.Add(1)
		go func(i int, tab *Value[prefs]) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				tab.Set(prefs{Theme: fmt.Sprintf("tab%d-%d", i, n), Size: n})
			}
		}(i, tab)
	}
	wg.Wait()

	reloaded := NewValue(hub.Open(), "settings", defaultPrefs)
	for _, tab := range tabs {
		assert.Equal(t, reloaded.Get(), tab.Get())
	}
}

func TestValue_IgnoresStaleChange(t *testing.T) {
	hub, _ := newHub(t, repository.NewMemoryRepository())
	tabA := hub.Open()
	v := NewValue(hub.Open(), "settings", defaultPrefs)

	require.NoError(t, tabA.SetItem("settings", `{"theme":"dark","size":16}`))
	require.NoError(t, tabA.SetItem("settings", `{"theme":"sepia","size":16}`))

	v.onStorage(Change{Key: "settings", NewValue: `{"theme":"dark","size":16}`, Seq: 1, Source: tabA.ID()})

	assert.Equal(t, "sepia", v.Get().Theme)
}
