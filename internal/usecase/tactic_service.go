package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tactics-board/internal/domain/instruction"
	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/role"
	"github.com/riskibarqy/tactics-board/internal/domain/roster"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	idgen "github.com/riskibarqy/tactics-board/internal/platform/id"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultWorkerPoolSize = 4

type TacticServiceConfig struct {
	AllowedSubstitutes int
	WorkerPoolSize     int
}

type CreateTacticInput struct {
	Name      string   `validate:"required,max=64"`
	Formation []string `validate:"required,min=1,max=11,dive,required"`
}

type SwapInput struct {
	TacticID int64 `validate:"gt=0"`
	A        roster.Location
	B        roster.Location
}

type SetRoleInput struct {
	TacticID int64  `validate:"gt=0"`
	Position string `validate:"required"`
	Role     string `validate:"required"`
}

type SetDutyInput struct {
	TacticID int64  `validate:"gt=0"`
	Position string `validate:"required"`
	Duty     string `validate:"required"`
}

// TacticSummary is one row of List.
type TacticSummary struct {
	ID          int64
	Name        string
	Formation   string
	Starting    int
	Substitutes int
	Reserves    int
}

// Board is an opened tactic with its players resolved into a roster model.
type Board struct {
	Tactic *tactic.Tactic
	Roster *roster.Model
}

// TacticService loads a tactic, runs one board operation on it and saves it.
type TacticService struct {
	tactics  tactic.Repository
	players  player.Repository
	roles    role.Source
	ids      idgen.Generator
	logger   *logging.Logger
	validate *validator.Validate
	allowed  int
	workers  int
}

func NewTacticService(
	tactics tactic.Repository,
	players player.Repository,
	roles role.Source,
	ids idgen.Generator,
	logger *logging.Logger,
	cfg TacticServiceConfig,
) *TacticService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.AllowedSubstitutes < 0 {
		cfg.AllowedSubstitutes = roster.DefaultAllowedSubstitutes
	}
	if cfg.WorkerPoolSize < 1 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	return &TacticService{
		tactics:  tactics,
		players:  players,
		roles:    roles,
		ids:      ids,
		logger:   logger,
		validate: validator.New(),
		allowed:  cfg.AllowedSubstitutes,
		workers:  cfg.WorkerPoolSize,
	}
}

// Create builds an empty tactic for the formation with the whole squad in
// the reserves, strongest first.
func (s *TacticService) Create(ctx context.Context, input CreateTacticInput) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	formation, err := parseFormation(input.Formation)
	if err != nil {
		return tactic.Data{}, err
	}

	squad, err := s.players.List(ctx)
	if err != nil {
		return tactic.Data{}, fmt.Errorf("%w: list players: %v", ErrDependencyUnavailable, err)
	}
	squadRefs := make([]*player.Player, 0, len(squad))
	for i := range squad {
		squadRefs = append(squadRefs, &squad[i])
	}
	player.ByAbility(squadRefs)

	id, err := s.ids.NewID()
	if err != nil {
		return tactic.Data{}, fmt.Errorf("generate tactic id: %w", err)
	}

	t := tactic.FromFormation(s.roles, formation)
	t.ID = id
	t.Name = input.Name

	board := &Board{Tactic: t, Roster: roster.NewModel(s.allowed, formation)}
	for _, p := range squadRefs {
		board.Roster.AppendReserve(p)
	}

	out, err := s.save(ctx, board)
	if err != nil {
		return tactic.Data{}, err
	}

	span.SetAttributes(attribute.Int64("tactic.id", id))
	s.logger.InfoContext(ctx, "tactic created",
		"tactic_id", id,
		"formation", t.FormationToString(),
		"reserves", len(squadRefs),
	)
	return out, nil
}

func (s *TacticService) Get(ctx context.Context, id int64) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.Get")
	defer span.End()

	return s.load(ctx, id)
}

// List summarises every stored tactic. Summaries are built on a worker pool
// and returned in id order.
func (s *TacticService) List(ctx context.Context) ([]TacticSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.List")
	defer span.End()

	items, err := s.tactics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list tactics: %v", ErrDependencyUnavailable, err)
	}
	if len(items) == 0 {
		return []TacticSummary{}, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(items)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]TacticSummary, len(items))
	var workers sync.WaitGroup
	for i := range items {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = s.summarize(items[i])
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit summary task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *TacticService) summarize(item tactic.Data) TacticSummary {
	t := tactic.FromData(s.roles, item)
	out := TacticSummary{
		ID:        t.ID,
		Name:      t.Name,
		Formation: t.FormationToString(),
		Reserves:  len(t.Reserves()),
	}
	for _, p := range t.Positions() {
		if p.HasPlayer() {
			out.Starting++
		}
	}
	for _, id := range t.Substitutes() {
		if id != player.NoID {
			out.Substitutes++
		}
	}
	return out
}

// Import stores a tactic document read from outside the store. Unknown and
// duplicate players are dropped the way OpenBoard drops them. The document
// id is kept when keepID is set, otherwise a new one is assigned.
func (s *TacticService) Import(ctx context.Context, data tactic.Data, keepID bool) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.Import")
	defer span.End()

	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" {
		return tactic.Data{}, fmt.Errorf("%w: tactic name is required", ErrInvalidInput)
	}
	if err := tactic.ValidateFormation(data.Formation()); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !keepID || data.ID <= 0 {
		id, err := s.ids.NewID()
		if err != nil {
			return tactic.Data{}, fmt.Errorf("generate tactic id: %w", err)
		}
		data.ID = id
	}

	players, err := s.players.GetByIDs(ctx, data.PlayerIDs())
	if err != nil {
		return tactic.Data{}, fmt.Errorf("%w: resolve players: %v", ErrDependencyUnavailable, err)
	}
	index := player.NewIndex(players)

	t := tactic.FromData(s.roles, data)
	t.ResolvePlayers(index.PlayerByID)
	out, err := s.save(ctx, &Board{Tactic: t, Roster: roster.FromTactic(t, index, s.allowed)})
	if err != nil {
		return tactic.Data{}, err
	}

	span.SetAttributes(attribute.Int64("tactic.id", out.ID))
	s.logger.InfoContext(ctx, "tactic imported", "tactic_id", out.ID, "formation", t.FormationToString())
	return out, nil
}

func (s *TacticService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.Delete")
	defer span.End()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.tactics.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete tactic: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "tactic deleted", "tactic_id", id)
	return nil
}

// OpenBoard loads a tactic and resolves its player ids. Ids the squad no
// longer knows are dropped from the board.
func (s *TacticService) OpenBoard(ctx context.Context, id int64) (*Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.OpenBoard")
	defer span.End()

	data, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	players, err := s.players.GetByIDs(ctx, data.PlayerIDs())
	if err != nil {
		return nil, fmt.Errorf("%w: resolve players: %v", ErrDependencyUnavailable, err)
	}
	index := player.NewIndex(players)

	t := tactic.FromData(s.roles, data)
	t.ResolvePlayers(index.PlayerByID)
	board := &Board{Tactic: t, Roster: roster.FromTactic(t, index, s.allowed)}

	board.Roster.Subscribe(roster.ListenerFuncs{
		SubstitutesCountChanged: func(count int) {
			s.logger.DebugContext(ctx, "bench changed", "tactic_id", id, "substitutes", count)
		},
		ReservesCountChanged: func(count int) {
			s.logger.DebugContext(ctx, "reserves changed", "tactic_id", id, "reserves", count)
		},
	})
	return board, nil
}

// ChangeFormation moves starters with the group-aware remap. Players left
// without a slot go to the reserves. Roles and duties follow their exact
// position.
func (s *TacticService) ChangeFormation(ctx context.Context, id int64, rawFormation []string) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.ChangeFormation")
	defer span.End()

	formation, err := parseFormation(rawFormation)
	if err != nil {
		return tactic.Data{}, err
	}

	board, err := s.OpenBoard(ctx, id)
	if err != nil {
		return tactic.Data{}, err
	}

	before := board.Tactic.FormationToString()
	board.Roster.BeginUpdate()
	unplaced := board.Roster.SetFormation(formation)
	for _, p := range unplaced {
		board.Roster.AppendReserve(p)
	}
	board.Roster.EndUpdate()
	board.Tactic.ChangeFormation(formation, true)

	out, err := s.save(ctx, board)
	if err != nil {
		return tactic.Data{}, err
	}

	s.logger.InfoContext(ctx, "formation changed",
		"tactic_id", id,
		"from", before,
		"to", board.Tactic.FormationToString(),
		"moved_to_reserves", len(unplaced),
	)
	return out, nil
}

// Swap exchanges the occupants of two locations. Both locations must exist
// on the board; the bench and reserves are compacted afterwards.
func (s *TacticService) Swap(ctx context.Context, input SwapInput) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.Swap")
	defer span.End()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	board, err := s.OpenBoard(ctx, input.TacticID)
	if err != nil {
		return tactic.Data{}, err
	}
	if !board.Roster.Valid(input.A) {
		return tactic.Data{}, fmt.Errorf("%w: location %s is not on the board", ErrInvalidInput, input.A)
	}
	if !board.Roster.Valid(input.B) {
		return tactic.Data{}, fmt.Errorf("%w: location %s is not on the board", ErrInvalidInput, input.B)
	}

	board.Roster.BeginUpdate()
	board.Roster.SwapPlayers(input.A, input.B)
	board.Roster.CompactSubstitutes()
	board.Roster.CompactReserves()
	board.Roster.EndUpdate()

	s.logger.DebugContext(ctx, "players swapped", "tactic_id", input.TacticID, "a", input.A.String(), "b", input.B.String())
	return s.save(ctx, board)
}

func (s *TacticService) ClearStartingLineup(ctx context.Context, id int64) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.ClearStartingLineup")
	defer span.End()

	return s.mutateBoard(ctx, id, func(b *Board) error {
		b.Roster.ClearStartingLineup()
		return nil
	})
}

func (s *TacticService) ClearSubstitutes(ctx context.Context, id int64) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.ClearSubstitutes")
	defer span.End()

	return s.mutateBoard(ctx, id, func(b *Board) error {
		b.Roster.ClearSubstitutes()
		return nil
	})
}

func (s *TacticService) SortSubstitutes(ctx context.Context, id int64) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.SortSubstitutes")
	defer span.End()

	return s.mutateBoard(ctx, id, func(b *Board) error {
		b.Roster.SortSubstitutes()
		return nil
	})
}

func (s *TacticService) SortReserves(ctx context.Context, id int64) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.SortReserves")
	defer span.End()

	return s.mutateBoard(ctx, id, func(b *Board) error {
		b.Roster.SortReserves()
		return nil
	})
}

// AddToReserves appends squad players to the reserves. Players already on
// the board are left where they are.
func (s *TacticService) AddToReserves(ctx context.Context, id int64, playerIDs []player.ID) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.AddToReserves")
	defer span.End()

	if len(playerIDs) == 0 {
		return tactic.Data{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	found, err := s.players.GetByIDs(ctx, playerIDs)
	if err != nil {
		return tactic.Data{}, fmt.Errorf("%w: resolve players: %v", ErrDependencyUnavailable, err)
	}
	index := player.NewIndex(found)
	for _, pid := range playerIDs {
		if _, ok := index.PlayerByID(pid); !ok {
			return tactic.Data{}, fmt.Errorf("%w: player %d not found", ErrInvalidInput, pid)
		}
	}

	return s.mutateBoard(ctx, id, func(b *Board) error {
		b.Roster.BeginUpdate()
		defer b.Roster.EndUpdate()
		for _, pid := range playerIDs {
			p, _ := index.PlayerByID(pid)
			b.Roster.AppendReserve(p)
		}
		return nil
	})
}

func (s *TacticService) SetRole(ctx context.Context, input SetRoleInput) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.SetRole")
	defer span.End()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutateSlot(ctx, input.TacticID, input.Position, func(p *tactic.Position) error {
		if !p.SetRole(role.ID(strings.TrimSpace(input.Role))) {
			return fmt.Errorf("%w: role %q is not available at %s", ErrInvalidInput, input.Role, p.ID())
		}
		return nil
	})
}

func (s *TacticService) SetDuty(ctx context.Context, input SetDutyInput) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.SetDuty")
	defer span.End()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.mutateSlot(ctx, input.TacticID, input.Position, func(p *tactic.Position) error {
		if !p.SetDuty(role.Duty(strings.TrimSpace(input.Duty))) {
			return fmt.Errorf("%w: duty %q is not available at %s", ErrInvalidInput, input.Duty, p.ID())
		}
		return nil
	})
}

// SetCustomInstructions overrides the instructions of the slot's role. A nil
// set restores the role defaults.
func (s *TacticService) SetCustomInstructions(ctx context.Context, id int64, pos string, set *instruction.Set) (tactic.Data, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TacticService.SetCustomInstructions")
	defer span.End()

	return s.mutateSlot(ctx, id, pos, func(p *tactic.Position) error {
		r := p.Role()
		if r == nil {
			return fmt.Errorf("%w: no role selected at %s", ErrInvalidInput, p.ID())
		}
		if set == nil {
			r.ClearCustomInstructions()
			return nil
		}
		if !r.SetCustomInstructions(*set) {
			return fmt.Errorf("%w: instructions are not allowed for role %s", ErrInvalidInput, r.ID())
		}
		return nil
	})
}

func (s *TacticService) mutateBoard(ctx context.Context, id int64, fn func(*Board) error) (tactic.Data, error) {
	board, err := s.OpenBoard(ctx, id)
	if err != nil {
		return tactic.Data{}, err
	}
	if err := fn(board); err != nil {
		return tactic.Data{}, err
	}
	return s.save(ctx, board)
}

func (s *TacticService) mutateSlot(ctx context.Context, id int64, rawPos string, fn func(*tactic.Position) error) (tactic.Data, error) {
	data, err := s.load(ctx, id)
	if err != nil {
		return tactic.Data{}, err
	}

	t := tactic.FromData(s.roles, data)
	pos := position.ID(strings.ToUpper(strings.TrimSpace(rawPos)))
	slot, ok := t.Position(pos)
	if !ok {
		return tactic.Data{}, fmt.Errorf("%w: position %q is not in the formation", ErrInvalidInput, rawPos)
	}
	if err := fn(slot); err != nil {
		return tactic.Data{}, err
	}

	out := t.ToData()
	if err := s.tactics.Upsert(ctx, out); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: save tactic: %v", ErrDependencyUnavailable, err)
	}
	return out, nil
}

func (s *TacticService) load(ctx context.Context, id int64) (tactic.Data, error) {
	if id <= 0 {
		return tactic.Data{}, fmt.Errorf("%w: tactic id must be greater than zero", ErrInvalidInput)
	}

	data, exists, err := s.tactics.GetByID(ctx, id)
	if err != nil {
		return tactic.Data{}, fmt.Errorf("%w: get tactic: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return tactic.Data{}, fmt.Errorf("%w: tactic %d", ErrNotFound, id)
	}
	return data, nil
}

func (s *TacticService) save(ctx context.Context, board *Board) (tactic.Data, error) {
	board.Roster.ApplyTo(board.Tactic)
	out := board.Tactic.ToData()
	if err := s.tactics.Upsert(ctx, out); err != nil {
		return tactic.Data{}, fmt.Errorf("%w: save tactic: %v", ErrDependencyUnavailable, err)
	}
	return out, nil
}

func parseFormation(raw []string) ([]position.ID, error) {
	formation := tactic.ParseFormation(raw)
	if err := tactic.ValidateFormation(formation); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return formation, nil
}
