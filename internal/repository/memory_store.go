package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pickupgames/signup/internal/model"
)

// MemoryStore is an in-process stand-in for postgres, used by the "memory" database driver and in tests.
// Lookups return gorm.ErrRecordNotFound and unique violations gorm.ErrDuplicatedKey, like the pg repositories.
type MemoryStore struct {
	mu   sync.Mutex
	txMu sync.Mutex
	now  func() time.Time
	seq  int64

	games         map[uuid.UUID]model.Game
	registrations map[uuid.UUID]model.Registration
	activities    map[uuid.UUID]memActivity
	announcements map[uuid.UUID]model.Announcement
}

type memActivity struct {
	entry model.ActivityEntry
	seq   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:           time.Now,
		games:         make(map[uuid.UUID]model.Game),
		registrations: make(map[uuid.UUID]model.Registration),
		activities:    make(map[uuid.UUID]memActivity),
		announcements: make(map[uuid.UUID]model.Announcement),
	}
}

func (s *MemoryStore) Games() GameRepository                 { return &memGameRepository{s: s} }
func (s *MemoryStore) Registrations() RegistrationRepository { return &memRegistrationRepository{s: s} }
func (s *MemoryStore) Activities() ActivityRepository        { return &memActivityRepository{s: s} }
func (s *MemoryStore) Announcements() AnnouncementRepository { return &memAnnouncementRepository{s: s} }

// WithinTx serializes units of work and restores a snapshot when fn fails.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	err := fn(ctx, Repositories{
		Games:         s.Games(),
		Registrations: s.Registrations(),
		Activities:    s.Activities(),
	})
	if err != nil {
		s.restore(snap)
	}
	return err
}

type memSnapshot struct {
	games         map[uuid.UUID]model.Game
	registrations map[uuid.UUID]model.Registration
	activities    map[uuid.UUID]memActivity
}

func (s *MemoryStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		games:         make(map[uuid.UUID]model.Game, len(s.games)),
		registrations: make(map[uuid.UUID]model.Registration, len(s.registrations)),
		activities:    make(map[uuid.UUID]memActivity, len(s.activities)),
	}
	for k, v := range s.games {
		snap.games[k] = v
	}
	for k, v := range s.registrations {
		snap.registrations[k] = cloneRegistration(v)
	}
	for k, v := range s.activities {
		snap.activities[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = snap.games
	s.registrations = snap.registrations
	s.activities = snap.activities
}

func cloneRegistration(r model.Registration) model.Registration {
	if r.Position != nil {
		p := *r.Position
		r.Position = &p
	}
	return r
}

func (s *MemoryStore) stamp(id *uuid.UUID, createdAt *time.Time) time.Time {
	now := s.now()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	return now
}

type memGameRepository struct{ s *MemoryStore }

func (r *memGameRepository) Create(_ context.Context, game *model.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.AccessCode == game.AccessCode {
			return gorm.ErrDuplicatedKey
		}
	}
	if _, ok := r.s.games[game.ID]; ok && game.ID != uuid.Nil {
		return gorm.ErrDuplicatedKey
	}
	game.UpdatedAt = r.s.stamp(&game.ID, &game.CreatedAt)
	r.s.games[game.ID] = *game
	return nil
}

func (r *memGameRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.games[id]
	if !ok || g.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func (r *memGameRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	return r.GetByID(ctx, id)
}

func (r *memGameRepository) GetByCode(_ context.Context, code string) (*model.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.AccessCode == code && !g.DeletedAt.Valid {
			g := g
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memGameRepository) CodeExists(_ context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.games {
		if g.AccessCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memGameRepository) ListStartingFrom(_ context.Context, from time.Time) ([]model.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var games []model.Game
	for _, g := range r.s.games {
		if !g.DeletedAt.Valid && !g.StartTime.Before(from) {
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].StartTime.Before(games[j].StartTime) })
	return games, nil
}

func (r *memGameRepository) Update(_ context.Context, game *model.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.games[game.ID]
	if !ok || existing.DeletedAt.Valid {
		return gorm.ErrRecordNotFound
	}
	for id, g := range r.s.games {
		if id != game.ID && g.AccessCode == game.AccessCode {
			return gorm.ErrDuplicatedKey
		}
	}
	game.UpdatedAt = r.s.now()
	r.s.games[game.ID] = *game
	return nil
}

func (r *memGameRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.games[id]
	if !ok || g.DeletedAt.Valid {
		return nil
	}
	g.DeletedAt = gorm.DeletedAt{Time: r.s.now(), Valid: true}
	r.s.games[id] = g
	return nil
}

type memRegistrationRepository struct{ s *MemoryStore }

func (r *memRegistrationRepository) Create(_ context.Context, reg *model.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.registrations {
		if existing.GameID == reg.GameID && strings.EqualFold(existing.Email, reg.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	reg.Normalize()
	reg.UpdatedAt = r.s.stamp(&reg.ID, &reg.CreatedAt)
	r.s.registrations[reg.ID] = cloneRegistration(*reg)
	return nil
}

func (r *memRegistrationRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	reg = cloneRegistration(reg)
	return &reg, nil
}

func (r *memRegistrationRepository) GetByGameAndEmail(_ context.Context, gameID uuid.UUID, email string) (*model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reg := range r.s.registrations {
		if reg.GameID == gameID && strings.EqualFold(reg.Email, email) {
			reg = cloneRegistration(reg)
			return &reg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRegistrationRepository) filter(keep func(model.Registration) bool) []model.Registration {
	var regs []model.Registration
	for _, reg := range r.s.registrations {
		if keep(reg) {
			regs = append(regs, cloneRegistration(reg))
		}
	}
	sort.Slice(regs, func(i, j int) bool {
		if !regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].CreatedAt.Before(regs[j].CreatedAt)
		}
		return regs[i].ID.String() < regs[j].ID.String()
	})
	return regs
}

func (r *memRegistrationRepository) ListByGameAndStatus(
	_ context.Context, gameID uuid.UUID, status model.RegistrationStatus,
) ([]model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(reg model.Registration) bool {
		return reg.GameID == gameID && reg.Status == status
	}), nil
}

func (r *memRegistrationRepository) CountByGameAndStatus(
	ctx context.Context, gameID uuid.UUID, status model.RegistrationStatus,
) (int64, error) {
	regs, err := r.ListByGameAndStatus(ctx, gameID, status)
	return int64(len(regs)), err
}

func (r *memRegistrationRepository) ListByStatus(_ context.Context, status model.RegistrationStatus) ([]model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(reg model.Registration) bool { return reg.Status == status }), nil
}

func (r *memRegistrationRepository) update(id uuid.UUID, mutate func(*model.Registration)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mutate(&reg)
	reg.UpdatedAt = r.s.now()
	r.s.registrations[id] = cloneRegistration(reg)
	return nil
}

func (r *memRegistrationRepository) UpdateStatus(
	_ context.Context, id uuid.UUID, status model.RegistrationStatus, position *int,
) error {
	return r.update(id, func(reg *model.Registration) {
		reg.Status = status
		reg.Position = position
	})
}

func (r *memRegistrationRepository) UpdatePosition(_ context.Context, id uuid.UUID, position int) error {
	return r.update(id, func(reg *model.Registration) { reg.Position = &position })
}

func (r *memRegistrationRepository) UpdatePhoneDigits(_ context.Context, id uuid.UUID, digits string) error {
	return r.update(id, func(reg *model.Registration) { reg.PhoneDigits = digits })
}

func (r *memRegistrationRepository) DeleteByGame(_ context.Context, gameID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, reg := range r.s.registrations {
		if reg.GameID != gameID {
			continue
		}
		delete(r.s.registrations, id)
		for aid, a := range r.s.activities {
			if a.entry.RegistrationID != nil && *a.entry.RegistrationID == id {
				a.entry.RegistrationID = nil
				r.s.activities[aid] = a
			}
		}
	}
	return nil
}

// Seed inserts a registration as-is, bypassing normalization. Used to load legacy rows.
func (s *MemoryStore) Seed(reg model.Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&reg.ID, &reg.CreatedAt)
	s.registrations[reg.ID] = cloneRegistration(reg)
}

type memActivityRepository struct{ s *MemoryStore }

func (r *memActivityRepository) Create(_ context.Context, entry *model.ActivityEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&entry.ID, &entry.CreatedAt)
	r.s.seq++
	r.s.activities[entry.ID] = memActivity{entry: *entry, seq: r.s.seq}
	return nil
}

func (r *memActivityRepository) list(keep func(model.ActivityEntry) bool, limit int) []model.ActivityEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []memActivity
	for _, a := range r.s.activities {
		if keep(a.entry) {
			rows = append(rows, a)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].entry.CreatedAt.Equal(rows[j].entry.CreatedAt) {
			return rows[i].entry.CreatedAt.After(rows[j].entry.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	entries := make([]model.ActivityEntry, 0, len(rows))
	for _, a := range rows {
		entries = append(entries, a.entry)
	}
	return entries
}

func (r *memActivityRepository) ListRecent(_ context.Context, limit int) ([]model.ActivityEntry, error) {
	return r.list(func(model.ActivityEntry) bool { return true }, limit), nil
}

func (r *memActivityRepository) ListByGame(_ context.Context, gameID uuid.UUID, limit int) ([]model.ActivityEntry, error) {
	return r.list(func(e model.ActivityEntry) bool { return e.GameID == gameID }, limit), nil
}

func (r *memActivityRepository) DeleteByGame(_ context.Context, gameID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.activities {
		if a.entry.GameID == gameID {
			delete(r.s.activities, id)
		}
	}
	return nil
}

type memAnnouncementRepository struct{ s *MemoryStore }

func (r *memAnnouncementRepository) Create(_ context.Context, ann *model.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ann.UpdatedAt = r.s.stamp(&ann.ID, &ann.CreatedAt)
	r.s.announcements[ann.ID] = *ann
	return nil
}

func (r *memAnnouncementRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ann, ok := r.s.announcements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ann, nil
}

func (r *memAnnouncementRepository) sorted(keep func(model.Announcement) bool) []model.Announcement {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var anns []model.Announcement
	for _, a := range r.s.announcements {
		if keep(a) {
			anns = append(anns, a)
		}
	}
	sort.Slice(anns, func(i, j int) bool { return anns[i].CreatedAt.After(anns[j].CreatedAt) })
	return anns
}

func (r *memAnnouncementRepository) List(_ context.Context, limit int) ([]model.Announcement, error) {
	anns := r.sorted(func(model.Announcement) bool { return true })
	if limit > 0 && len(anns) > limit {
		anns = anns[:limit]
	}
	return anns, nil
}

func (r *memAnnouncementRepository) ListActive(_ context.Context) ([]model.Announcement, error) {
	return r.sorted(func(a model.Announcement) bool { return a.IsActive }), nil
}

func (r *memAnnouncementRepository) Update(_ context.Context, ann *model.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.announcements[ann.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	ann.UpdatedAt = r.s.now()
	r.s.announcements[ann.ID] = *ann
	return nil
}

func (r *memAnnouncementRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.announcements[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.announcements, id)
	return nil
}
