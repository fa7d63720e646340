// Package service holds the festival use cases.  Services own validation
// that needs more than one record or the festival config, translate
// catalog payloads into API shapes and write the activity feed.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

// ErrCatalogUnavailable is returned when a catalog record is required and
// the catalog call failed.
var ErrCatalogUnavailable = errors.New("movie catalog unavailable")

// ErrPromoNotFound is returned when a promo code does not exist.
var ErrPromoNotFound = errors.New("promo code not found")

// Catalog is the subset of the catalog client the services use.
type Catalog interface {
	NowPlaying(ctx context.Context, page int) (*catalog.Page, error)
	Category(ctx context.Context, cat catalog.Category, page int, window string) (*catalog.Page, error)
	Discover(ctx context.Context, p catalog.DiscoverParams) (*catalog.Page, error)
	Search(ctx context.Context, query string, page int) (*catalog.Page, error)
	Details(ctx context.Context, id int64) (*catalog.MovieDetails, error)
	Images() catalog.ImageBase
}

// Clock returns the current time.  Tests pin it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// recordActivity appends to the dashboard feed.  Failures are logged and
// swallowed: the feed is informational.
func recordActivity(ctx context.Context, repo *repository.ActivityRepo, action, detail string, typ model.ActivityType, now time.Time) {
	a := &model.Activity{ID: utils.NewID(), Action: action, Detail: detail, Type: typ, CreatedAt: now.Unix()}
	if err := repo.Create(ctx, a); err != nil {
		logger.Warn("record activity failed", zap.String("action", action), zap.Error(err))
	}
}

// sinceLabel renders a unix time relative to now, e.g. "2 hours ago".
func sinceLabel(unix int64, now time.Time) string {
	return humanize.RelTime(time.Unix(unix, 0), now, "ago", "from now")
}
