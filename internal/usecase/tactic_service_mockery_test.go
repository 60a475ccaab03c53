package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/roster"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	"github.com/riskibarqy/tactics-board/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/tactics-board/internal/mocks/domain/player"
	tacticmock "github.com/riskibarqy/tactics-board/internal/mocks/domain/tactic"
	idgen "github.com/riskibarqy/tactics-board/internal/platform/id"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newMockedTacticService(t *testing.T) (*TacticService, *tacticmock.Repository, *playermock.Repository) {
	t.Helper()

	logger := logging.NewNop()
	tacticRepo := tacticmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	svc := NewTacticService(
		tacticRepo,
		playerRepo,
		memory.NewRoleCatalog(logger, memory.SeedRoles()),
		idgen.NewSequence(100),
		logger,
		TacticServiceConfig{AllowedSubstitutes: 3},
	)
	return svc, tacticRepo, playerRepo
}

func TestTacticService_Get_StoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	svc, tacticRepo, _ := newMockedTacticService(t)
	tacticRepo.
		On("GetByID", mock.Anything, int64(5)).
		Return(tactic.Data{}, false, errors.New("connection refused")).
		Once()

	_, err := svc.Get(context.Background(), 5)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestTacticService_Create_PlayerStoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	svc, _, playerRepo := newMockedTacticService(t)
	playerRepo.
		On("List", mock.Anything).
		Return(nil, errors.New("timeout")).
		Once()

	_, err := svc.Create(context.Background(), CreateTacticInput{Name: "Broken", Formation: fourFourTwo})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestTacticService_Swap_InvalidLocationSkipsSaveUsingMockery(t *testing.T) {
	t.Parallel()

	svc, tacticRepo, playerRepo := newMockedTacticService(t)
	stored := tactic.FromFormation(nil, tactic.ParseFormation(fourFourTwo))
	stored.ID = 9
	stored.Name = "Stored"
	stored.SetSubstitutes(make([]player.ID, 3))
	stored.SetReserves([]player.ID{1})

	tacticRepo.
		On("GetByID", mock.Anything, int64(9)).
		Return(stored.ToData(), true, nil).
		Once()
	playerRepo.
		On("GetByIDs", mock.Anything, []player.ID{1}).
		Return([]player.Player{{ID: 1, Name: "Keeper", Ability: 70}}, nil).
		Once()

	_, err := svc.Swap(context.Background(), SwapInput{TacticID: 9, A: roster.ReserveAt(0), B: roster.BenchAt(3)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	tacticRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestTacticService_Swap_SavesBoardUsingMockery(t *testing.T) {
	t.Parallel()

	svc, tacticRepo, playerRepo := newMockedTacticService(t)
	stored := tactic.FromFormation(nil, tactic.ParseFormation(fourFourTwo))
	stored.ID = 9
	stored.Name = "Stored"
	stored.SetSubstitutes(make([]player.ID, 3))
	stored.SetReserves([]player.ID{1, 2})

	tacticRepo.
		On("GetByID", mock.Anything, int64(9)).
		Return(stored.ToData(), true, nil).
		Once()
	playerRepo.
		On("GetByIDs", mock.Anything, []player.ID{1, 2}).
		Return([]player.Player{{ID: 1, Name: "Keeper", Ability: 70}, {ID: 2, Name: "Back", Ability: 65}}, nil).
		Once()
	tacticRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(d tactic.Data) bool {
			return d.ID == 9 &&
				d.Positions[0].PlayerID != nil && *d.Positions[0].PlayerID == 1 &&
				len(d.Reserves) == 1 && *d.Reserves[0] == 2
		})).
		Return(nil).
		Once()

	if _, err := svc.Swap(context.Background(), SwapInput{TacticID: 9, A: roster.ReserveAt(0), B: roster.StartingAt("GK")}); err != nil {
		t.Fatalf("swap: %v", err)
	}
}
