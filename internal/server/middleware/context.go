package middleware

import (
	"github.com/OFFIS-RIT/resumegraph/internal/storage"
	"github.com/OFFIS-RIT/resumegraph/pkg/graph"
	"github.com/OFFIS-RIT/resumegraph/pkg/store"

	"github.com/labstack/echo/v4"
)

// App carries the long lived clients shared by all requests. Artifacts is
// nil when no object store is configured.
type App struct {
	Graph     *graph.GraphClient
	Store     store.GraphStorage
	Artifacts *storage.ArtifactStore
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
