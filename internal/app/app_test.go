package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tactics-board/internal/config"
	"github.com/riskibarqy/tactics-board/internal/platform/logging"
	"github.com/riskibarqy/tactics-board/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(store string) config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "tactics-board",
		Store:              store,
		SubstitutesAllowed: 7,
		WorkerPoolSize:     2,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	a, err := New(t.Context(), testConfig(config.StoreMemory), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(t.Context()) })

	created, err := a.Tactics.Create(t.Context(), usecase.CreateTacticInput{Name: "Diamond", Formation: []string{"GK,DL,DC,DR,DMC,MCL,MCR,AMC,STCL,STCR"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestNew_FileStorePersistsAcrossApps(t *testing.T) {
	cfg := testConfig(config.StoreFile)
	cfg.TacticsDir = t.TempDir()
	cfg.CacheEnabled = true
	cfg.CacheTTL = time.Minute

	first, err := New(t.Context(), cfg, logging.NewNop())
	require.NoError(t, err)
	created, err := first.Tactics.Create(t.Context(), usecase.CreateTacticInput{Name: "Flat", Formation: []string{"GK,DL,DCL,DCR,DR,ML,MCL,MCR,MR,STCL,STCR"}})
	require.NoError(t, err)
	require.NoError(t, first.Close(t.Context()))

	second, err := New(t.Context(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close(t.Context()) })

	loaded, err := second.Tactics.Get(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, loaded.Name)
	assert.Len(t, loaded.Positions, 11)
}

func TestClose_RunsClosersInReverse(t *testing.T) {
	var order []int
	a := &App{}
	for i := 1; i <= 3; i++ {
		a.closers = append(a.closers, func(context.Context) error {
			order = append(order, i)
			if i == 2 {
				return errors.New("close failed")
			}
			return nil
		})
	}

	err := a.Close(t.Context())
	require.Error(t, err)
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.NoError(t, a.Close(t.Context()), "closers run once")
}
