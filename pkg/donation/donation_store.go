package donation

import (
	"Pasikuthu/domain"
	"Pasikuthu/entities"
	"context"
	"slices"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

type (
	DonationFetcher interface {
		GetDonations(ctx context.Context) ([]*entities.Donation, error)
	}

	// DonationStore owns the local donation collection. The published slice is
	// never written after it is stored; every change swaps in a new slice so a
	// reader holding an older snapshot is never torn.
	DonationStore struct {
		fetcher DonationFetcher
		group   singleflight.Group

		mu        sync.RWMutex
		donations []domain.Donation
		locked    map[string]struct{}
		session   *domain.Session
		loading   bool
		loadErr   error
		reloadSeq uint64
	}
)

func NewDonationStore(fetcher DonationFetcher) *DonationStore {
	return &DonationStore{
		fetcher:   fetcher,
		donations: []domain.Donation{},
		locked:    make(map[string]struct{}),
	}
}

// Reload replaces the collection with the remote one. A nil session clears the
// collection without touching the remote store. Failures clear the collection
// and are kept for LoadError; nothing is retried.
func (s *DonationStore) Reload(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	s.reloadSeq++
	seq := s.reloadSeq
	s.session = session
	if session == nil {
		s.donations = []domain.Donation{}
		s.loading = false
		s.loadErr = nil
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.loadErr = nil
	s.mu.Unlock()

	result, err, _ := s.group.Do(session.AccessToken, func() (any, error) {
		return s.fetcher.GetDonations(ctx)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.reloadSeq {
		log.Debugw("discarding superseded reload", "seq", seq, "latest", s.reloadSeq)
		return nil
	}
	s.loading = false

	if err != nil {
		s.donations = []domain.Donation{}
		s.loadErr = classifyRemoteError("load donations", err)
		return s.loadErr
	}

	s.donations = toDomainDonations(result.([]*entities.Donation))
	return nil
}

// InsertConfirmed prepends a row the remote store has already accepted.
func (s *DonationStore) InsertConfirmed(d domain.Donation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Donation, 0, len(s.donations)+1)
	next = append(next, d)
	for _, existing := range s.donations {
		if existing.ID != d.ID {
			next = append(next, existing)
		}
	}
	s.donations = next
}

// ApplyUpdateConfirmed substitutes the remote row for the local one. Without a
// returned row the collection is reloaded instead of trusting the local value.
// A row for an id that is no longer present is dropped.
func (s *DonationStore) ApplyUpdateConfirmed(ctx context.Context, id string, updated *domain.Donation) error {
	if updated == nil {
		return s.Reload(ctx, s.Session())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		log.Debugw("dropping update for donation no longer in collection", "id", id)
		return nil
	}
	next := slices.Clone(s.donations)
	next[idx] = *updated
	s.donations = next
	return nil
}

// RemoveConfirmed removes id after the remote delete succeeded. Removing an
// absent id is a no-op.
func (s *DonationStore) RemoveConfirmed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	next := make([]domain.Donation, 0, len(s.donations)-1)
	next = append(next, s.donations[:idx]...)
	next = append(next, s.donations[idx+1:]...)
	s.donations = next
	return true
}

// TryLock marks id as having a mutation in flight. It fails when one is already running.
func (s *DonationStore) TryLock(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.locked[id]; busy {
		return false
	}
	s.locked[id] = struct{}{}
	return true
}

func (s *DonationStore) Unlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locked, id)
}

func (s *DonationStore) IsLocked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, busy := s.locked[id]
	return busy
}

func (s *DonationStore) LockedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.locked))
	for id := range s.locked {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Snapshot returns the current collection. Callers must not modify it.
func (s *DonationStore) Snapshot() []domain.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.donations
}

func (s *DonationStore) Get(id string) (domain.Donation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Donation{}, false
	}
	return s.donations[idx], true
}

func (s *DonationStore) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *DonationStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *DonationStore) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *DonationStore) indexOf(id string) int {
	return slices.IndexFunc(s.donations, func(d domain.Donation) bool {
		return d.ID == id
	})
}
