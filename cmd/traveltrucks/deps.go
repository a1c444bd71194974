package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/traveltrucks/traveltrucks/internal/app"
	"github.com/traveltrucks/traveltrucks/internal/booking"
	"github.com/traveltrucks/traveltrucks/internal/catalog"
	"github.com/traveltrucks/traveltrucks/internal/favorites"
	"github.com/traveltrucks/traveltrucks/internal/format"
	"github.com/traveltrucks/traveltrucks/internal/notice"
	"github.com/traveltrucks/traveltrucks/internal/ports"
	"github.com/traveltrucks/traveltrucks/internal/storage"
	"github.com/traveltrucks/traveltrucks/internal/version"
)

// runtime is the state shared by every command of one process. It is built
// on first use, after the root command has loaded the configuration.
type runtime struct {
	state *app.State
	favs  *favorites.Set
}

// reporter receives non-fatal storage problems.
var reporter ports.Reporter = notice.NewDefaultConsole()

var (
	rt     *runtime
	rtErr  error
	rtOnce sync.Once
)

func loadRuntime(ctx context.Context) (*runtime, error) {
	rtOnce.Do(func() {
		rt, rtErr = buildRuntime(ctx)
	})
	return rt, rtErr
}

func buildRuntime(ctx context.Context) (*runtime, error) {
	source, err := catalog.NewFromConfig()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	persister, err := storage.NewFromConfig(ctx)
	if err != nil {
		reporter.Warning("favorites will not be saved: " + err.Error())
		persister = nil
	}
	favs := favorites.New(persister)
	favs.OnSaveError(func(err error) {
		reporter.Warning("failed to save favorites: " + err.Error())
	})

	return &runtime{state: app.NewState(source, favs), favs: favs}, nil
}

// rehydrate loads the persisted favorites, keeping an empty set on failure.
func (r *runtime) rehydrate(ctx context.Context) {
	if err := r.favs.Rehydrate(ctx); err != nil {
		reporter.Warning("failed to load favorites: " + err.Error())
	}
}

// closeRuntime waits for pending favorites saves and closes storage.
func closeRuntime() error {
	if rt == nil {
		return nil
	}
	return rt.favs.Close()
}

// runtimeClient implements every command client on top of the shared
// runtime.
type runtimeClient struct{}

var client = runtimeClient{}

func (runtimeClient) loaded(ctx context.Context) (*runtime, error) {
	r, err := loadRuntime(ctx)
	if err != nil {
		return nil, err
	}
	r.rehydrate(ctx)
	return r, nil
}

func (c runtimeClient) ListCampers(ctx context.Context, opts app.ListOptions, w io.Writer) error {
	r, err := c.loaded(ctx)
	if err != nil {
		return err
	}
	return app.NewListUseCase(r.state).Execute(ctx, opts, w)
}

func (c runtimeClient) ShowCamper(ctx context.Context, id string, formatterType format.FormatterType, w io.Writer) error {
	r, err := c.loaded(ctx)
	if err != nil {
		return err
	}
	return app.NewShowUseCase(r.state).Execute(ctx, id, formatterType, w)
}

func (c runtimeClient) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	r, err := c.loaded(ctx)
	if err != nil {
		return false, err
	}
	return app.NewFavoritesUseCase(r.state).Toggle(id), nil
}

func (c runtimeClient) ListFavorites(ctx context.Context, formatterType format.FormatterType, w io.Writer) error {
	r, err := c.loaded(ctx)
	if err != nil {
		return err
	}
	return app.NewFavoritesUseCase(r.state).List(ctx, formatterType, w)
}

func (c runtimeClient) ClearFavorites(ctx context.Context) error {
	r, err := c.loaded(ctx)
	if err != nil {
		return err
	}
	app.NewFavoritesUseCase(r.state).Clear()
	return nil
}

func (c runtimeClient) Book(ctx context.Context, req booking.Request) (string, error) {
	r, err := c.loaded(ctx)
	if err != nil {
		return "", err
	}
	return app.NewBookUseCase(r.state).Execute(ctx, req)
}

// State returns the shared state with favorites rehydrating in the
// background, so the TUI can render before storage answers. Load failures
// are only logged since the console belongs to the TUI.
func (runtimeClient) State(ctx context.Context) (*app.State, error) {
	r, err := loadRuntime(ctx)
	if err != nil {
		return nil, err
	}
	go func() {
		_ = r.favs.Rehydrate(ctx)
	}()
	return r.state, nil
}

func (runtimeClient) Version() string {
	return version.String()
}
