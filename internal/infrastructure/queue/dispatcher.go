package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/inkmarket/commission-market/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans artist ids out to a fixed set of workers for bulk card
// re-syncs, using consistent hashing on the artist id so syncs for one artist
// never reorder. The hot path (profile updates, rating recomputes) syncs
// inline; this path serves the admin resync of the whole card collection.
type Dispatcher struct {
	workers []chan string
	cards   ports.CardService
	users   ports.UserRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, cards ports.CardService, users ports.UserRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		cards:   cards,
		users:   users,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends one artist id to the worker responsible for it.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(artistID string) {
	d.workers[d.shardIndex(artistID)] <- artistID
}

// ResyncAll enqueues every artist for a card re-sync and returns how many
// were enqueued.
func (d *Dispatcher) ResyncAll(ctx context.Context) (int, error) {
	ids, err := d.users.ListArtistIDs(ctx)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		d.Enqueue(id)
	}
	d.log.Info().Int("artists", len(ids)).Msg("card resync enqueued")
	return len(ids), nil
}

// shardIndex maps an artist id deterministically to a worker index.
func (d *Dispatcher) shardIndex(artistID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(artistID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case artistID, ok := <-ch:
			if !ok {
				return
			}
			if err := d.cards.Sync(ctx, artistID); err != nil {
				d.log.Error().Err(err).
					Str("artist_id", artistID).
					Int("worker_id", id).
					Msg("card resync failed")
			}
		}
	}
}
