package routes

import (
	"context"

	pkgdeps "binger-server/pkg/deps"
)

func bulkProgressKey(fp string) string { return "progress:bulk:" + fp }
func calendarKey(fp string) string     { return "calendar:" + fp }

// invalidateUserCaches drops the derived views that depend on the user's
// watch and list state. Called after every mutation.
func invalidateUserCaches(ctx context.Context, d pkgdeps.ServerDeps, fp string) {
	_ = d.Cache.Delete(ctx, bulkProgressKey(fp))
	_ = d.Cache.Delete(ctx, calendarKey(fp))
}
