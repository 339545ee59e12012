// Package fetch drives product listing requests and publishes their outcome
// to the shared store.
package fetch

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/farmstand/internal/catalog"
	"github.com/five82/farmstand/internal/state"
)

// ErrStale is returned by Load when a newer request started before this one
// finished. Its result was discarded.
var ErrStale = errors.New("stale response discarded")

// Controller issues one listing request per Load call. There is no retry and
// no backoff: a failed attempt is logged and the list keeps its prior state
// until the next token change.
type Controller struct {
	fetcher catalog.ProductFetcher
	store   *state.Store
	logger  *zap.Logger
}

// New builds a Controller. A nil logger discards output.
func New(fetcher catalog.ProductFetcher, store *state.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{fetcher: fetcher, store: store, logger: logger.Named("fetch")}
}

// Store returns the store the controller writes to.
func (c *Controller) Store() *state.Store { return c.store }

// Load fetches the catalog for token and applies the result if no newer Load
// has begun since. The loading flag is set for the duration and cleared once
// the newest request finishes, whatever its outcome.
func (c *Controller) Load(ctx context.Context, token string) (err error) {
	gen := c.store.Begin()
	log := c.logger.With(zap.String("op", "load"), zap.Uint64("generation", gen))

	var products []catalog.Product
	defer func() {
		if c.store.Apply(gen, products, err) {
			if err == nil {
				log.Info("applied product listings", zap.Int("count", len(products)))
			}
			return
		}
		log.Debug("discarded stale response", zap.Int("count", len(products)), zap.Error(err))
		err = ErrStale
	}()

	if strings.TrimSpace(token) == "" {
		err = catalog.ErrMissingToken
		log.Warn("skipping listing request", zap.String("kind", catalog.KindMissingCredential.String()))
		return err
	}

	log.Debug("requesting product listings")
	products, err = c.fetcher.FetchProductListings(ctx, token)
	if err != nil {
		products = nil
		kind := catalog.Classify(err)
		fields := []zap.Field{
			zap.String("kind", kind.String()),
			zap.String("request_id", catalog.RequestID(err)),
			zap.Error(err),
		}
		var statusErr *catalog.StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, zap.Int("status", statusErr.Code))
		}
		if kind == catalog.KindCanceled {
			log.Info("listing request canceled", fields...)
		} else {
			log.Error("listing request failed", fields...)
		}
		return err
	}

	return nil
}
