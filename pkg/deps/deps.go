package deps

import (
	"time"

	"binger-server/internal/catalog"
	"binger-server/internal/recommend"
	"binger-server/internal/repos"
	"binger-server/pkg/cache"
	"binger-server/pkg/signer"
)

// ServerDeps holds the dependencies required by handlers and server.
type ServerDeps struct {
	Repo      *repos.Repository
	Cache     cache.Cache
	Signer    signer.Codec
	Catalog   catalog.Provider
	Loader    *catalog.Loader
	Ranker    *recommend.Ranker
	Name      string
	StartedAt time.Time
}
