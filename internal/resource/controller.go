package resource

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/pkg/apiclient"

	"github.com/sirupsen/logrus"
)

// ErrStaleResponse is returned by FetchAll when a newer fetch was issued
// while this one was in flight; its result was discarded.
var ErrStaleResponse = errors.New("resource: response superseded by a newer fetch")

// ListController owns the canonical collection of one screen. Every fetch
// takes a sequence number and only the latest issued fetch may apply.
type ListController[T any] struct {
	name     string
	gateway  repository.ResourceGateway[T]
	notifier *Notifier
	log      *logrus.Logger

	mu        sync.Mutex
	records   []T
	issued    uint64
	applied   uint64
	inflight  int
	loaded    bool
	fetchedAt time.Time
}

func NewListController[T any](name string, gateway repository.ResourceGateway[T], notifier *Notifier, log *logrus.Logger) *ListController[T] {
	return &ListController[T]{
		name:     name,
		gateway:  gateway,
		notifier: notifier,
		log:      log,
	}
}

// FetchAll replaces the collection with the server's. On failure the
// previous collection is kept and a danger toast is raised.
func (c *ListController[T]) FetchAll(ctx context.Context, query url.Values) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.inflight++
	c.mu.Unlock()

	records, err := c.gateway.List(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if seq != c.issued {
		return ErrStaleResponse
	}
	if err != nil {
		c.log.WithField("resource", c.name).Warnf("Failed to fetch collection: %+v", err)
		c.notifier.Show(apiclient.UserMessage(err), entity.AlertDanger)
		return err
	}

	if records == nil {
		records = []T{}
	}
	c.records = records
	c.applied = seq
	c.loaded = true
	c.fetchedAt = time.Now()
	return nil
}

// Records returns a copy of the canonical collection.
func (c *ListController[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.records...)
}

// Loading reports whether any fetch is outstanding.
func (c *ListController[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

func (c *ListController[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Sequence returns the last issued and last applied fetch numbers.
func (c *ListController[T]) Sequence() (issued, applied uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issued, c.applied
}

func (c *ListController[T]) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}
