package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-api/internal/mines"
	"github.com/vancomm/minesweeper-api/internal/store"
)

const maxIDAttempts = 3

// lockedRand makes a Rand safe to share between requests.
type lockedRand struct {
	mu sync.Mutex
	r  mines.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Service runs games on top of a [store.Store]. Moves against the same game
// are applied one at a time.
type Service struct {
	logger  *slog.Logger
	store   store.Store
	locks   *keyLock
	rnd     mines.Rand
	maxWait time.Duration
	newID   func() string
}

func NewService(
	logger *slog.Logger,
	s store.Store,
	rnd mines.Rand,
	maxWait time.Duration,
) *Service {
	return &Service{
		logger:  logger,
		store:   s,
		locks:   newKeyLock(),
		rnd:     &lockedRand{r: rnd},
		maxWait: maxWait,
		newID:   uuid.NewString,
	}
}

func (s *Service) NewGame(ctx context.Context, params mines.Params) (*mines.Game, error) {
	for range maxIDAttempts {
		game, err := mines.NewGame(s.newID(), params, s.rnd)
		if err != nil {
			return nil, err
		}
		game.CreatedAt = time.Now().UTC()
		game.UpdatedAt = game.CreatedAt

		err = s.store.Add(ctx, game.ID, game)
		if errors.Is(err, store.ErrExists) {
			s.logger.Warn("game id collision", slog.String("game_id", game.ID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unable to store new game: %w", err)
		}

		s.logger.Info(
			"game created",
			slog.String("game_id", game.ID),
			slog.Int("width", game.Width),
			slog.Int("height", game.Height),
			slog.Int("mine_count", game.MineCount),
		)
		return game, nil
	}
	return nil, fmt.Errorf("unable to allocate a game id after %d attempts", maxIDAttempts)
}

func (s *Service) load(ctx context.Context, id string) (*mines.Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid game id", mines.ErrGameNotFound, id)
	}
	var game mines.Game
	err := s.store.Get(ctx, id, &game)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf(
			"%w: game %s was never created or has expired", mines.ErrGameNotFound, id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load game %s: %w", id, err)
	}
	return &game, nil
}

func (s *Service) Fetch(ctx context.Context, id string) (*mines.Game, error) {
	return s.load(ctx, id)
}

// Move reveals (row, col) in game id and stores the result. A rejected move
// leaves the stored game untouched.
func (s *Service) Move(ctx context.Context, id string, row, col int) (*mines.Game, error) {
	lockCtx := ctx
	if s.maxWait > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.maxWait)
		defer cancel()
	}
	unlock, err := s.locks.Lock(lockCtx, id)
	if err != nil {
		return nil, fmt.Errorf("game %s is busy: %w", id, err)
	}
	defer unlock()

	game, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := game.Reveal(row, col); err != nil {
		return nil, err
	}
	game.UpdatedAt = time.Now().UTC()

	if err := s.store.Set(ctx, id, game); err != nil {
		return nil, fmt.Errorf("unable to store game %s: %w", id, err)
	}

	logger := s.logger.With(
		slog.String("game_id", id), slog.Int("row", row), slog.Int("col", col),
	)
	if game.Completed() {
		logger.Info("game completed", slog.String("state", game.State.String()))
	} else {
		logger.Debug("move accepted", slog.Int("revealed", game.RevealedCount))
	}
	return game, nil
}
