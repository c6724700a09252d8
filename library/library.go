package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"omnihub/constants"
	"omnihub/types"
	"omnihub/utils"
	"slices"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"
)

// ErrInvalidDraft is returned by Add when the draft cannot become a game.
var ErrInvalidDraft = errors.New("invalid game draft")

const maxIDAttempts = 5

// SlotStore is the persistent key-value slot the library is mirrored to.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// UIProvider defines logging, event emission and the blocking confirmation prompt.
type UIProvider interface {
	LogInfof(format string, args ...interface{})
	LogErrorf(format string, args ...interface{})
	EventsEmit(eventName string, args ...interface{})
	Confirm(title, message string) bool
}

// Service owns the canonical, ordered game collection. Every mutation is
// written to the slot in full and refreshes the aggregate stats.
type Service struct {
	mu    sync.RWMutex
	games []types.Game
	stats types.Stats

	slot SlotStore
	ui   UIProvider

	now          func() time.Time
	sessionHours func() int
	newID        func() (string, error)
}

// Option customises a Service.
type Option func(*Service)

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSessionHours sets the source of simulated session lengths.
func WithSessionHours(fn func() int) Option {
	return func(s *Service) { s.sessionHours = fn }
}

// WithIDGenerator sets the source of new game ids.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) { s.newID = fn }
}

// New creates a new library Service. Call Initialize before use.
func New(slot SlotStore, ui UIProvider, opts ...Option) *Service {
	s := &Service{
		slot:  slot,
		ui:    ui,
		now:   time.Now,
		newID: func() (string, error) { return gonanoid.New() },
		sessionHours: func() int {
			return constants.MinSessionHours + rand.IntN(constants.MaxSessionHours-constants.MinSessionHours+1)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the collection from the slot. An empty, unreadable or
// invalid slot is replaced by the seed collection, which is written back.
func (s *Service) Initialize(ctx context.Context) error {
	games, err := s.load(ctx)
	seeded := err != nil
	if seeded {
		s.ui.LogErrorf("Initialize: %v; falling back to seed library", err)
		games = SeedGames()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = games
	s.recomputeStats()
	s.ui.LogInfof("Initialize: Loaded %d games (%d hours)", s.stats.TotalGames, s.stats.TotalHours)

	if seeded {
		return s.persist(ctx)
	}
	return nil
}

var errSlotEmpty = errors.New("library slot is empty")

func (s *Service) load(ctx context.Context) ([]types.Game, error) {
	data, ok, err := s.slot.Get(ctx, constants.SlotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read library slot: %w", err)
	}
	if !ok {
		return nil, errSlotEmpty
	}

	var games []types.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse library slot: %w", err)
	}
	// "null" decodes without error but is not a collection
	if games == nil {
		return nil, fmt.Errorf("failed to parse library slot: not an array")
	}
	if err := validateCollection(games); err != nil {
		return nil, fmt.Errorf("library slot is invalid: %w", err)
	}
	return games, nil
}

func validateCollection(games []types.Game) error {
	seen := make(map[string]bool, len(games))
	for i, g := range games {
		switch {
		case g.ID == "":
			return fmt.Errorf("game %d has no id", i)
		case seen[g.ID]:
			return fmt.Errorf("duplicate id %q", g.ID)
		case strings.TrimSpace(g.Title) == "":
			return fmt.Errorf("game %q has no title", g.ID)
		case !g.Platform.Valid():
			return fmt.Errorf("game %q has unknown platform %q", g.ID, g.Platform)
		case g.PlaytimeHours < 0:
			return fmt.Errorf("game %q has negative playtime", g.ID)
		}
		seen[g.ID] = true
	}
	return nil
}

// Games returns a copy of the collection in storage order.
func (s *Service) Games() []types.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.games)
}

// Get returns the game with the given id.
func (s *Service) Get(id string) (types.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, _, ok := s.find(id)
	return game, ok
}

// Stats returns the aggregate stats as of the last mutation.
func (s *Service) Stats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Today returns the current calendar day as the library sees it.
func (s *Service) Today() time.Time {
	return utils.StartOfDay(s.now())
}

// Add creates a game from draft and puts it at the front of the collection.
func (s *Service) Add(ctx context.Context, draft types.GameDraft) (types.Game, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return types.Game{}, fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	if !draft.Platform.Valid() {
		return types.Game{}, fmt.Errorf("%w: unknown platform %q", ErrInvalidDraft, draft.Platform)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return types.Game{}, err
	}

	game := types.Game{
		ID:            id,
		Title:         title,
		CoverURL:      draft.CoverURL,
		Platform:      draft.Platform,
		Genre:         draft.Genre,
		Description:   draft.Description,
		IsFavorite:    false,
		PlaytimeHours: 0,
		AddedAt:       utils.FormatDay(s.now()),
	}
	s.games = append([]types.Game{game}, s.games...)
	s.ui.LogInfof("Add: Added %q (%s) as %s", game.Title, game.Platform, game.ID)

	return game, s.persist(ctx)
}

func (s *Service) uniqueID() (string, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate game id: %w", err)
		}
		if _, _, taken := s.find(id); !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique game id after %d attempts", maxIDAttempts)
}

// ToggleFavorite flips the favorite flag of a game. Unknown ids are a no-op
// and report false.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (types.Game, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := s.find(id)
	if !ok {
		return types.Game{}, false, nil
	}

	s.games[idx].IsFavorite = !s.games[idx].IsFavorite
	game := s.games[idx]
	return game, true, s.persist(ctx)
}

// Launch records a simulated play session: lastPlayed becomes today and the
// playtime grows by one to three hours. Unknown ids are a no-op.
func (s *Service) Launch(ctx context.Context, id string) (types.Game, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := s.find(id)
	if !ok {
		return types.Game{}, false, nil
	}

	hours := lo.Clamp(s.sessionHours(), constants.MinSessionHours, constants.MaxSessionHours)
	s.games[idx].LastPlayed = utils.FormatDay(s.now())
	s.games[idx].PlaytimeHours += hours
	game := s.games[idx]
	s.ui.LogInfof("Launch: %q played for %d hours", game.Title, hours)

	return game, true, s.persist(ctx)
}

// Delete removes a game after the user confirms. Declining, or an unknown id,
// leaves the collection untouched and reports false.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	game, ok := s.Get(id)
	if !ok {
		return false, nil
	}

	// The prompt blocks, so it runs without the lock held.
	message := fmt.Sprintf("Are you sure you want to remove %s from your library?", game.Title)
	if !s.ui.Confirm("Remove Game", message) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := s.find(id)
	if !ok {
		return false, nil
	}
	s.games = slices.Delete(s.games, idx, idx+1)
	s.ui.LogInfof("Delete: Removed %q", game.Title)

	return true, s.persist(ctx)
}

// find must be called with the lock held.
func (s *Service) find(id string) (types.Game, int, bool) {
	return lo.FindIndexOf(s.games, func(g types.Game) bool { return g.ID == id })
}

func (s *Service) recomputeStats() {
	s.stats = types.Stats{
		TotalHours: lo.SumBy(s.games, func(g types.Game) int { return g.PlaytimeHours }),
		TotalGames: len(s.games),
	}
}

// persist must be called with the write lock held. The in-memory state is
// kept even when the write fails.
func (s *Service) persist(ctx context.Context) error {
	if s.games == nil {
		s.games = []types.Game{}
	}
	s.recomputeStats()

	data, err := json.Marshal(s.games)
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}
	if err := s.slot.Set(ctx, constants.SlotKey, data); err != nil {
		s.ui.LogErrorf("persist: %v", err)
		return fmt.Errorf("failed to save library: %w", err)
	}

	s.ui.EventsEmit(constants.EventLibraryChanged, s.stats)
	return nil
}
