package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

var listedStatuses = func() []model.RegistrationStatus {
	var out []model.RegistrationStatus
	for _, status := range model.Statuses {
		if status.Listed() {
			out = append(out, status)
		}
	}
	return out
}()

// recalculatePositions assigns dense positions 1..N within the confirmed list and within the
// waitlist, oldest request first. Only rows whose position changes are written; the count of
// writes is returned.
func recalculatePositions(ctx context.Context, regs repository.RegistrationRepository, gameID uuid.UUID) (int, error) {
	writes := 0
	for _, status := range listedStatuses {
		list, err := regs.ListByGameAndStatus(ctx, gameID, status)
		if err != nil {
			return writes, fmt.Errorf("list %s: %w", status, err)
		}
		for i, reg := range list {
			want := i + 1
			if reg.Position != nil && *reg.Position == want {
				continue
			}
			if err := regs.UpdatePosition(ctx, reg.ID, want); err != nil {
				return writes, fmt.Errorf("update position: %w", err)
			}
			writes++
		}
	}
	return writes, nil
}

// promoteWhileRoom moves the oldest waitlisted registrations to confirmed, one at a time,
// until the game is full or the waitlist is empty. Positions are left for the caller to recalculate.
func (c *Core) promoteWhileRoom(
	ctx context.Context, repos repository.Repositories, game *model.Game,
) ([]model.Registration, error) {
	var promoted []model.Registration
	for {
		confirmed, err := repos.Registrations.CountByGameAndStatus(ctx, game.ID, model.StatusConfirmed)
		if err != nil {
			return nil, fmt.Errorf("count confirmed: %w", err)
		}
		if confirmed >= int64(game.Capacity) {
			return promoted, nil
		}

		waitlist, err := repos.Registrations.ListByGameAndStatus(ctx, game.ID, model.StatusWaitlist)
		if err != nil {
			return nil, fmt.Errorf("list waitlist: %w", err)
		}
		if len(waitlist) == 0 {
			return promoted, nil
		}

		next := waitlist[0]
		if err := repos.Registrations.UpdateStatus(ctx, next.ID, model.StatusConfirmed, nil); err != nil {
			return nil, fmt.Errorf("promote registration: %w", err)
		}
		if err := c.appendActivity(ctx, repos, game.ID, &next, model.ActivityMoved,
			fmt.Sprintf("Auto-promoted from waitlist: %s", next.Name),
			transitionDetails(model.StatusWaitlist, model.StatusConfirmed, actorSystem),
		); err != nil {
			return nil, err
		}

		next.Status = model.StatusConfirmed
		next.Position = nil
		promoted = append(promoted, next)
	}
}

// reload re-reads registrations so callers see positions assigned by the last recalculation.
func reload(ctx context.Context, regs repository.RegistrationRepository, list []model.Registration) ([]model.Registration, error) {
	out := make([]model.Registration, 0, len(list))
	for _, r := range list {
		fresh, err := regs.GetByID(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("reload registration: %w", err)
		}
		out = append(out, *fresh)
	}
	return out, nil
}
