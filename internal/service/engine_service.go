package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

const (
	actorOrganizer = "organizer"
	actorPlayer    = "player"
	actorSystem    = "system"
)

// Transition is the outcome of one state change: the registration acted on, in its final state,
// and any waitlisted registrations promoted as a consequence.
type Transition struct {
	Registration *model.Registration  `json:"registration"`
	Promoted     []model.Registration `json:"promoted,omitempty"`
}

type EngineService interface {
	Approve(ctx context.Context, regID uuid.UUID) (*Transition, error)
	Deny(ctx context.Context, regID uuid.UUID) (*Transition, error)
	Cancel(ctx context.Context, regID uuid.UUID) (*Transition, error)
	Remove(ctx context.Context, gameID, regID uuid.UUID) (*Transition, error)
	// Move is the organizer override. It accepts registrations in any status, including terminal ones.
	// triggerPromotion decides whether a slot freed by the move is refilled from the waitlist.
	Move(ctx context.Context, gameID, regID uuid.UUID, target string, triggerPromotion bool) (*Transition, error)
	PromoteIfRoomAvailable(ctx context.Context, gameID uuid.UUID) ([]model.Registration, error)
	Recalculate(ctx context.Context, gameID uuid.UUID) (int, error)
}

type engineService struct {
	core *Core
	regs repository.RegistrationRepository
}

func NewEngineService(core *Core, regs repository.RegistrationRepository) EngineService {
	return &engineService{core: core, regs: regs}
}

// locate finds the game a registration belongs to, so the right lock can be taken.
func (s *engineService) locate(ctx context.Context, regID uuid.UUID) (uuid.UUID, error) {
	reg, err := s.regs.GetByID(ctx, regID)
	if err != nil {
		return uuid.Nil, translateNotFound(err, ErrRegistrationNotFound, "load registration")
	}
	return reg.GameID, nil
}

// transition runs one registration state change inside the game scope. apply must check every
// precondition before its first write.
func (s *engineService) transition(
	ctx context.Context,
	gameID, regID uuid.UUID,
	apply func(ctx context.Context, repos repository.Repositories, game *model.Game, reg *model.Registration) (promoted []model.Registration, err error),
) (*Transition, error) {
	var result Transition
	err := s.core.inGameScope(ctx, gameID, func(ctx context.Context, repos repository.Repositories, game *model.Game) error {
		reg, err := repos.Registrations.GetByID(ctx, regID)
		if err != nil {
			return translateNotFound(err, ErrRegistrationNotFound, "load registration")
		}
		if reg.GameID != game.ID {
			return ErrRegistrationNotFound
		}

		promoted, err := apply(ctx, repos, game, reg)
		if err != nil {
			return err
		}
		if _, err := recalculatePositions(ctx, repos.Registrations, game.ID); err != nil {
			return err
		}

		final, err := repos.Registrations.GetByID(ctx, regID)
		if err != nil {
			return fmt.Errorf("reload registration: %w", err)
		}
		result.Registration = final
		result.Promoted, err = reload(ctx, repos.Registrations, promoted)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.core.logger.Info("registration transition",
		zap.String("game_id", gameID.String()),
		zap.String("registration_id", regID.String()),
		zap.String("status", string(result.Registration.Status)),
		zap.Int("promoted", len(result.Promoted)),
	)
	return &result, nil
}

func (s *engineService) Approve(ctx context.Context, regID uuid.UUID) (*Transition, error) {
	gameID, err := s.locate(ctx, regID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, gameID, regID, func(ctx context.Context, repos repository.Repositories, game *model.Game, reg *model.Registration) ([]model.Registration, error) {
		if reg.Status != model.StatusPending {
			return nil, ErrAlreadyProcessed
		}

		confirmed, err := repos.Registrations.CountByGameAndStatus(ctx, game.ID, model.StatusConfirmed)
		if err != nil {
			return nil, fmt.Errorf("count confirmed: %w", err)
		}
		target := model.StatusWaitlist
		if confirmed < int64(game.Capacity) {
			target = model.StatusConfirmed
		}

		if err := repos.Registrations.UpdateStatus(ctx, reg.ID, target, nil); err != nil {
			return nil, fmt.Errorf("approve registration: %w", err)
		}
		return nil, s.core.appendActivity(ctx, repos, game.ID, reg, model.ActivityApproved,
			fmt.Sprintf("Approved (%s): %s", target, reg.Name),
			transitionDetails(reg.Status, target, actorOrganizer),
		)
	})
}

func (s *engineService) Deny(ctx context.Context, regID uuid.UUID) (*Transition, error) {
	gameID, err := s.locate(ctx, regID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, gameID, regID, func(ctx context.Context, repos repository.Repositories, game *model.Game, reg *model.Registration) ([]model.Registration, error) {
		if reg.Status != model.StatusPending {
			return nil, ErrAlreadyProcessed
		}
		if err := repos.Registrations.UpdateStatus(ctx, reg.ID, model.StatusDenied, nil); err != nil {
			return nil, fmt.Errorf("deny registration: %w", err)
		}
		return nil, s.core.appendActivity(ctx, repos, game.ID, reg, model.ActivityDenied,
			fmt.Sprintf("Denied: %s", reg.Name),
			transitionDetails(reg.Status, model.StatusDenied, actorOrganizer),
		)
	})
}

func (s *engineService) Cancel(ctx context.Context, regID uuid.UUID) (*Transition, error) {
	gameID, err := s.locate(ctx, regID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, gameID, regID, func(ctx context.Context, repos repository.Repositories, game *model.Game, reg *model.Registration) ([]model.Registration, error) {
		if reg.Status.Terminal() {
			return nil, ErrNotCancellable
		}
		if err := repos.Registrations.UpdateStatus(ctx, reg.ID, model.StatusCancelled, nil); err != nil {
			return nil, fmt.Errorf("cancel registration: %w", err)
		}
		if err := s.core.appendActivity(ctx, repos, game.ID, reg, model.ActivityCancelled,
			fmt.Sprintf("%s cancelled (email: %s)", reg.Name, reg.Email),
			transitionDetails(reg.Status, model.StatusCancelled, actorPlayer),
		); err != nil {
			return nil, err
		}
		return s.core.promoteWhileRoom(ctx, repos, game)
	})
}

func (s *engineService) Remove(ctx context.Context, gameID, regID uuid.UUID) (*Transition, error) {
	return s.transition(ctx, gameID, regID, func(ctx context.Context, repos repository.Repositories, game *model.Game, reg *model.Registration) ([]model.Registration, error) {
		if err := repos.Registrations.UpdateStatus(ctx, reg.ID, model.StatusRemoved, nil); err != nil {
			return nil, fmt.Errorf("remove registration: %w", err)
		}
		if err := s.core.appendActivity(ctx, repos, game.ID, reg, model.ActivityRemoved,
			fmt.Sprintf("Removed: %s", reg.Name),
			transitionDetails(reg.Status, model.StatusRemoved, actorOrganizer),
		); err != nil {
			return nil, err
		}
		return s.core.promoteWhileRoom(ctx, repos, game)
	})
}

// ParseMoveTarget accepts the lists an organizer may move a registration onto.
func ParseMoveTarget(target string) (model.RegistrationStatus, error) {
	status := model.RegistrationStatus(strings.ToUpper(strings.TrimSpace(target)))
	if !status.Valid() || status.Terminal() {
		return "", ErrInvalidTarget
	}
	return status, nil
}

func (s *engineService) Move(
	ctx context.Context, gameID, regID uuid.UUID, target string, triggerPromotion bool,
) (*Transition, error) {
	status, err := ParseMoveTarget(target)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, gameID, regID, func(ctx context.Context, repos repository.Repositories, game *model.Game, reg *model.Registration) ([]model.Registration, error) {
		dest := status
		if dest == model.StatusConfirmed && reg.Status != model.StatusConfirmed {
			confirmed, err := repos.Registrations.CountByGameAndStatus(ctx, game.ID, model.StatusConfirmed)
			if err != nil {
				return nil, fmt.Errorf("count confirmed: %w", err)
			}
			if confirmed >= int64(game.Capacity) {
				dest = model.StatusWaitlist
			}
		}

		if err := repos.Registrations.UpdateStatus(ctx, reg.ID, dest, nil); err != nil {
			return nil, fmt.Errorf("move registration: %w", err)
		}
		if err := s.core.appendActivity(ctx, repos, game.ID, reg, model.ActivityMoved,
			fmt.Sprintf("Moved: %s → %s", reg.Name, dest),
			transitionDetails(reg.Status, dest, actorOrganizer),
		); err != nil {
			return nil, err
		}

		if !triggerPromotion {
			return nil, nil
		}
		return s.core.promoteWhileRoom(ctx, repos, game)
	})
}

func (s *engineService) PromoteIfRoomAvailable(ctx context.Context, gameID uuid.UUID) ([]model.Registration, error) {
	var promoted []model.Registration
	err := s.core.inGameScope(ctx, gameID, func(ctx context.Context, repos repository.Repositories, game *model.Game) error {
		list, err := s.core.promoteWhileRoom(ctx, repos, game)
		if err != nil {
			return err
		}
		if _, err := recalculatePositions(ctx, repos.Registrations, game.ID); err != nil {
			return err
		}
		promoted, err = reload(ctx, repos.Registrations, list)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(promoted) > 0 {
		s.core.logger.Info("waitlist promoted",
			zap.String("game_id", gameID.String()),
			zap.Int("count", len(promoted)),
		)
	}
	return promoted, nil
}

func (s *engineService) Recalculate(ctx context.Context, gameID uuid.UUID) (int, error) {
	var writes int
	err := s.core.inGameScope(ctx, gameID, func(ctx context.Context, repos repository.Repositories, game *model.Game) error {
		var err error
		writes, err = recalculatePositions(ctx, repos.Registrations, game.ID)
		return err
	})
	return writes, err
}

var _ EngineService = (*engineService)(nil)
