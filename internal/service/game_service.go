package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

const maxAccessCodeAttempts = 100

type GameInput struct {
	Title     string    `validate:"required,max=120" label:"title"`
	Location  string    `validate:"max=200" label:"location"`
	StartTime time.Time `validate:"required" label:"start time"`
	EndTime   time.Time `validate:"required,gtfield=StartTime" label:"end time"`
	Capacity  int       `validate:"gt=0" label:"capacity"`
}

func (in GameInput) normalize() (GameInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	return in, validateInput(in)
}

type GameService interface {
	CreateGame(ctx context.Context, input GameInput) (*model.Game, error)
	// EditGame refuses to shrink capacity below the confirmed count and fills new room from the waitlist.
	EditGame(ctx context.Context, id uuid.UUID, input GameInput) (*model.Game, []model.Registration, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error
	GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error)
	GetByCode(ctx context.Context, code string) (*model.Game, error)
	ListUpcoming(ctx context.Context) ([]model.Game, error)
	IsPast(game *model.Game) bool
}

type gameService struct {
	core  *Core
	games repository.GameRepository
}

func NewGameService(core *Core, games repository.GameRepository) GameService {
	return &gameService{core: core, games: games}
}

func (s *gameService) CreateGame(ctx context.Context, input GameInput) (*model.Game, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAccessCodeAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		code, err := s.core.drawCode()
		if err != nil {
			return nil, fmt.Errorf("generate access code: %w", err)
		}
		exists, err := s.games.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("check access code: %w", err)
		}
		if exists {
			continue
		}

		game := &model.Game{
			Title:      input.Title,
			Location:   input.Location,
			StartTime:  input.StartTime,
			EndTime:    input.EndTime,
			Capacity:   input.Capacity,
			AccessCode: code,
			CreatedAt:  s.core.now(),
		}
		err = s.core.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			if err := repos.Games.Create(ctx, game); err != nil {
				return err
			}
			return s.core.appendActivity(ctx, repos, game.ID, nil, model.ActivityGameCreated,
				fmt.Sprintf("Game created: %s (code %s)", game.Title, game.AccessCode), nil)
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another request took the code between the check and the insert.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create game: %w", err)
		}

		s.core.logger.Info("game created",
			zap.String("game_id", game.ID.String()),
			zap.String("access_code", game.AccessCode),
			zap.Int("attempts", attempt+1),
		)
		return game, nil
	}
	return nil, ErrAccessCodeExhausted
}

func (s *gameService) EditGame(ctx context.Context, id uuid.UUID, input GameInput) (*model.Game, []model.Registration, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, nil, err
	}

	var (
		updated  *model.Game
		promoted []model.Registration
	)
	err = s.core.inGameScope(ctx, id, func(ctx context.Context, repos repository.Repositories, game *model.Game) error {
		confirmed, err := repos.Registrations.CountByGameAndStatus(ctx, game.ID, model.StatusConfirmed)
		if err != nil {
			return fmt.Errorf("count confirmed: %w", err)
		}
		if int64(input.Capacity) < confirmed {
			return validationError("capacity %d is below the %d confirmed players", input.Capacity, confirmed)
		}

		game.Title = input.Title
		game.Location = input.Location
		game.StartTime = input.StartTime
		game.EndTime = input.EndTime
		game.Capacity = input.Capacity
		if err := repos.Games.Update(ctx, game); err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		if err := s.core.appendActivity(ctx, repos, game.ID, nil, model.ActivityGameUpdated,
			fmt.Sprintf("Game edited: %s", game.Title), nil); err != nil {
			return err
		}

		list, err := s.core.promoteWhileRoom(ctx, repos, game)
		if err != nil {
			return err
		}
		if _, err := recalculatePositions(ctx, repos.Registrations, game.ID); err != nil {
			return err
		}
		promoted, err = reload(ctx, repos.Registrations, list)
		if err != nil {
			return err
		}
		updated = game
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, promoted, nil
}

// DeleteGame soft-deletes the game, keeping its access code reserved, and drops its
// activity entries and registrations in the same transaction.
func (s *gameService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	var title string
	err := s.core.inGameScope(ctx, id, func(ctx context.Context, repos repository.Repositories, game *model.Game) error {
		title = game.Title
		if err := repos.Activities.DeleteByGame(ctx, game.ID); err != nil {
			return fmt.Errorf("delete activity: %w", err)
		}
		if err := repos.Registrations.DeleteByGame(ctx, game.ID); err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		if err := repos.Games.Delete(ctx, game.ID); err != nil {
			return fmt.Errorf("delete game: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.core.logger.Info("game deleted", zap.String("game_id", id.String()), zap.String("title", title))
	return nil
}

func (s *gameService) GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrGameNotFound, "load game")
	}
	return game, nil
}

func (s *gameService) GetByCode(ctx context.Context, code string) (*model.Game, error) {
	code = strings.TrimSpace(code)
	if err := inputValidator().Var(code, "required,len=5,number"); err != nil {
		return nil, validationError("access code must be 5 digits")
	}
	game, err := s.games.GetByCode(ctx, code)
	if err != nil {
		return nil, translateNotFound(err, ErrGameNotFound, "load game")
	}
	return game, nil
}

func (s *gameService) ListUpcoming(ctx context.Context) ([]model.Game, error) {
	games, err := s.games.ListStartingFrom(ctx, s.core.now())
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *gameService) IsPast(game *model.Game) bool {
	return game.IsPast(s.core.now())
}

var _ GameService = (*gameService)(nil)
