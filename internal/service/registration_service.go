package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

type RegisterInput struct {
	Name  string `validate:"required,max=120" label:"name"`
	Email string `validate:"required,max=254,email" label:"email"`
	Phone string `validate:"required,max=40,phone" label:"phone"`
}

// Roster is a game's lists as shown to players and organizers.
type Roster struct {
	Confirmed    []model.Registration `json:"confirmed"`
	Waitlist     []model.Registration `json:"waitlist"`
	Pending      []model.Registration `json:"pending,omitempty"`
	PendingCount int                  `json:"pending_count"`
}

// PendingRequest pairs a pending registration with the game it asks to join.
type PendingRequest struct {
	Registration model.Registration `json:"registration"`
	GameTitle    string             `json:"game_title"`
	AccessCode   string             `json:"access_code"`
}

type RegistrationService interface {
	Register(ctx context.Context, accessCode string, input RegisterInput) (*model.Registration, error)
	Authenticate(ctx context.Context, accessCode, email, phoneInput string) (*model.Registration, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	GameRoster(ctx context.Context, gameID uuid.UUID) (*Roster, error)
	ListPending(ctx context.Context) ([]PendingRequest, error)
}

type registrationService struct {
	core  *Core
	games repository.GameRepository
	regs  repository.RegistrationRepository
}

func NewRegistrationService(core *Core, games repository.GameRepository, regs repository.RegistrationRepository) RegistrationService {
	return &registrationService{core: core, games: games, regs: regs}
}

func (s *registrationService) Register(ctx context.Context, accessCode string, input RegisterInput) (*model.Registration, error) {
	input = RegisterInput{
		Name:  strings.TrimSpace(input.Name),
		Email: model.NormalizeEmail(input.Email),
		Phone: strings.TrimSpace(input.Phone),
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	name, email, phone := input.Name, input.Email, input.Phone

	var created *model.Registration
	err := s.core.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		game, err := repos.Games.GetByCode(ctx, accessCode)
		if err != nil {
			return translateNotFound(err, ErrGameNotFound, "load game")
		}
		if game.IsPast(s.core.now()) {
			return ErrGameClosed
		}

		_, err = repos.Registrations.GetByGameAndEmail(ctx, game.ID, email)
		switch {
		case err == nil:
			return ErrDuplicateRegistration
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("check registration: %w", err)
		}

		reg := &model.Registration{
			GameID:    game.ID,
			Name:      name,
			Email:     email,
			Phone:     phone,
			Status:    model.StatusPending,
			CreatedAt: s.core.now(),
		}
		reg.Normalize()
		if err := repos.Registrations.Create(ctx, reg); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRegistration
			}
			return fmt.Errorf("create registration: %w", err)
		}

		if err := s.core.appendActivity(ctx, repos, game.ID, reg, model.ActivityRequested,
			fmt.Sprintf("New request: %s (%s)", reg.Name, reg.Email),
			transitionDetails("", model.StatusPending, actorPlayer),
		); err != nil {
			return err
		}
		created = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate is the player portal check: email plus the digits of the phone number.
// Rows saved before phone_digits existed are matched against the raw phone and backfilled.
func (s *registrationService) Authenticate(ctx context.Context, accessCode, email, phoneInput string) (*model.Registration, error) {
	game, err := s.games.GetByCode(ctx, accessCode)
	if err != nil {
		return nil, translateNotFound(err, ErrGameNotFound, "load game")
	}

	reg, err := s.regs.GetByGameAndEmail(ctx, game.ID, strings.TrimSpace(email))
	if err != nil {
		return nil, translateNotFound(err, ErrRegistrationNotFound, "load registration")
	}

	digits := model.DigitsOnly(phoneInput)
	if digits == "" {
		return nil, ErrWrongCredentials
	}

	if reg.PhoneDigits != "" {
		if reg.PhoneDigits != digits {
			return nil, ErrWrongCredentials
		}
		return reg, nil
	}

	legacy := model.DigitsOnly(reg.Phone)
	if legacy != digits {
		return nil, ErrWrongCredentials
	}
	err = s.core.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Registrations.UpdatePhoneDigits(ctx, reg.ID, legacy)
	})
	if err != nil {
		return nil, fmt.Errorf("backfill phone digits: %w", err)
	}
	reg.PhoneDigits = legacy
	return reg, nil
}

func (s *registrationService) Get(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrRegistrationNotFound, "load registration")
	}
	return reg, nil
}

func (s *registrationService) GameRoster(ctx context.Context, gameID uuid.UUID) (*Roster, error) {
	confirmed, err := s.regs.ListByGameAndStatus(ctx, gameID, model.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed: %w", err)
	}
	waitlist, err := s.regs.ListByGameAndStatus(ctx, gameID, model.StatusWaitlist)
	if err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	pending, err := s.regs.ListByGameAndStatus(ctx, gameID, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	sortByPosition(confirmed)
	sortByPosition(waitlist)
	return &Roster{
		Confirmed:    confirmed,
		Waitlist:     waitlist,
		Pending:      pending,
		PendingCount: len(pending),
	}, nil
}

func (s *registrationService) ListPending(ctx context.Context) ([]PendingRequest, error) {
	regs, err := s.regs.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	games := make(map[uuid.UUID]*model.Game)
	out := make([]PendingRequest, 0, len(regs))
	for _, reg := range regs {
		game, ok := games[reg.GameID]
		if !ok {
			game, err = s.games.GetByID(ctx, reg.GameID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, fmt.Errorf("load game: %w", err)
			}
			games[reg.GameID] = game
		}
		out = append(out, PendingRequest{Registration: reg, GameTitle: game.Title, AccessCode: game.AccessCode})
	}
	return out, nil
}

// sortByPosition orders a listed set by stored position, keeping creation order for unset positions.
func sortByPosition(regs []model.Registration) {
	pos := func(r model.Registration) int {
		if r.Position == nil {
			return int(^uint(0) >> 1)
		}
		return *r.Position
	}
	sort.SliceStable(regs, func(i, j int) bool { return pos(regs[i]) < pos(regs[j]) })
}

var _ RegistrationService = (*registrationService)(nil)
