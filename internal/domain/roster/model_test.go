package roster

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/tactics-board/internal/domain/player"
	"github.com/riskibarqy/tactics-board/internal/domain/position"
	"github.com/riskibarqy/tactics-board/internal/domain/tactic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fourFourTwo = []position.ID{
	position.GK,
	position.DL, position.DCL, position.DCR, position.DR,
	position.ML, position.MCL, position.MCR, position.MR,
	position.STCL, position.STCR,
}

func newPlayer(id int64) *player.Player {
	return &player.Player{ID: player.ID(id), Name: fmt.Sprintf("Player %d", id), Ability: int(id)}
}

func ids(players []*player.Player) []player.ID {
	out := make([]player.ID, len(players))
	for i, p := range players {
		out[i] = player.IDOf(p)
	}
	return out
}

func fullFourFourTwo(t *testing.T) *Model {
	t.Helper()
	m := NewModel(4, fourFourTwo)
	for i, pos := range fourFourTwo {
		m.starting[pos] = newPlayer(int64(i + 1))
	}
	return m
}

func TestSetFormation_GroupAwareRemap(t *testing.T) {
	m := fullFourFourTwo(t)

	unplaced := m.SetFormation([]position.ID{
		position.GK, position.DCL, position.DC, position.DCR, position.DML,
		position.MC, position.DMR, position.AML, position.AMC, position.AMR, position.STC,
	})

	assert.Empty(t, unplaced)
	want := map[position.ID]player.ID{
		position.GK: 1, position.DCL: 3, position.DCR: 4,
		position.DML: 2, position.DMR: 5,
		position.MC: 7, position.STC: 10,
		position.AML: 6, position.AMC: 8, position.AMR: 9,
		position.DC: 11,
	}
	got := make(map[position.ID]player.ID)
	for pos, p := range m.Starting() {
		got[pos] = player.IDOf(p)
	}
	assert.Equal(t, want, got)
}

func TestSetFormation_ReturnsUnplacedToCaller(t *testing.T) {
	m := fullFourFourTwo(t)

	unplaced := m.SetFormation([]position.ID{position.GK, position.DC, position.MC})

	assert.Len(t, m.Starting(), 3)
	assert.Equal(t, []player.ID{2, 4, 5, 6, 8, 9, 10, 11}, ids(unplaced))
	assert.Empty(t, m.Reserves(), "the model does not move unplaced players by itself")
}

func TestSwapPlayers_BenchWithReserve(t *testing.T) {
	a, b, c := newPlayer(1), newPlayer(2), newPlayer(3)
	m := NewModel(4, fourFourTwo)
	m.substitutes = []*player.Player{a, b, nil, nil}
	m.reserves = []*player.Player{c}

	res := m.SwapPlayers(BenchAt(2), ReserveAt(0))
	m.CompactSubstitutes()

	assert.True(t, res.Complete())
	assert.Equal(t, []player.ID{1, 2, 3, player.NoID}, ids(m.Substitutes()))
	assert.Empty(t, m.Reserves())
}

func TestSwapPlayers_NullIntoReserveRemovesIndex(t *testing.T) {
	x, y, z := newPlayer(24), newPlayer(25), newPlayer(26)
	m := NewModel(4, fourFourTwo)
	m.reserves = []*player.Player{x, y, z}

	res := m.SwapPlayers(ReserveAt(1), BenchAt(0))

	assert.True(t, res.Complete())
	assert.Equal(t, []player.ID{25, 0, 0, 0}, ids(m.Substitutes()))
	assert.Equal(t, []player.ID{24, 26}, ids(m.Reserves()))
}

func TestSwapPlayers_StartingWithBench(t *testing.T) {
	m := fullFourFourTwo(t)
	sub := newPlayer(12)
	m.substitutes[1] = sub

	res := m.SwapPlayers(StartingAt(position.STCL), BenchAt(1))

	assert.True(t, res.Complete())
	assert.Same(t, sub, m.Starting()[position.STCL])
	assert.Equal(t, player.ID(10), player.IDOf(m.Substitutes()[1]))
}

func TestSwapPlayers_ReserveOverwriteWithinBounds(t *testing.T) {
	m := fullFourFourTwo(t)
	m.reserves = []*player.Player{newPlayer(20), newPlayer(21)}

	res := m.SwapPlayers(StartingAt(position.GK), ReserveAt(1))

	assert.True(t, res.Complete())
	assert.Equal(t, player.ID(21), player.IDOf(m.Starting()[position.GK]))
	assert.Equal(t, []player.ID{20, 1}, ids(m.Reserves()))
}

// Partial swaps: the valid side is applied even when the other side is not.
func TestSwapPlayers_PartialApplication(t *testing.T) {
	tests := []struct {
		name         string
		a, b         Location
		want         SwapResult
		wantBench    []player.ID
		wantReserves []player.ID
	}{
		{
			name:         "inactive starting position is skipped",
			a:            BenchAt(0),
			b:            StartingAt(position.AMC),
			want:         SwapResult{A: true, B: false},
			wantBench:    []player.ID{0, 0, 0, 0},
			wantReserves: []player.ID{20},
		},
		{
			name:         "player past reserve end is rejected",
			a:            BenchAt(0),
			b:            ReserveAt(5),
			want:         SwapResult{A: true, B: false},
			wantBench:    []player.ID{0, 0, 0, 0},
			wantReserves: []player.ID{20},
		},
		{
			name:         "out of range bench index",
			a:            ReserveAt(0),
			b:            BenchAt(9),
			want:         SwapResult{A: true, B: false},
			wantBench:    []player.ID{12, 0, 0, 0},
			wantReserves: []player.ID{},
		},
		{
			name:         "both sides invalid",
			a:            BenchAt(-1),
			b:            StartingAt("LIBERO"),
			want:         SwapResult{},
			wantBench:    []player.ID{12, 0, 0, 0},
			wantReserves: []player.ID{20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(4, []position.ID{position.GK})
			m.substitutes[0] = newPlayer(12)
			m.reserves = []*player.Player{newPlayer(20)}

			res := m.SwapPlayers(tt.a, tt.b)

			assert.Equal(t, tt.want, res)
			assert.False(t, res.Complete())
			assert.Equal(t, tt.wantBench, ids(m.Substitutes()))
			assert.Equal(t, tt.wantReserves, ids(m.Reserves()))
		})
	}
}

func TestSwapPlayers_SameLocationIsNoop(t *testing.T) {
	m := fullFourFourTwo(t)
	m.reserves = []*player.Player{newPlayer(30)}

	m.SwapPlayers(ReserveAt(0), ReserveAt(0))
	m.SwapPlayers(StartingAt(position.GK), StartingAt(position.GK))

	assert.Equal(t, []player.ID{30}, ids(m.Reserves()))
	assert.Equal(t, player.ID(1), player.IDOf(m.Starting()[position.GK]))
}

func TestCompaction(t *testing.T) {
	empty := &player.Player{}
	m := NewModel(5, nil)
	m.substitutes = []*player.Player{nil, newPlayer(3), empty, nil, newPlayer(1)}
	m.reserves = []*player.Player{newPlayer(7), {ID: 8}, newPlayer(9)}

	m.CompactSubstitutes()
	m.CompactReserves()
	bench, reserves := ids(m.Substitutes()), ids(m.Reserves())

	assert.Equal(t, []player.ID{3, 1, 0, 0, 0}, bench)
	assert.Equal(t, []player.ID{7, 9}, reserves)

	m.CompactSubstitutes()
	m.CompactReserves()
	assert.Equal(t, bench, ids(m.Substitutes()))
	assert.Equal(t, reserves, ids(m.Reserves()))
}

func TestSortSubstitutesAndReserves(t *testing.T) {
	m := NewModel(4, nil)
	m.substitutes = []*player.Player{nil, {ID: 1, Name: "Zed", Ability: 70}, nil, {ID: 2, Name: "Abe", Ability: 70}}
	m.reserves = []*player.Player{{ID: 3, Name: "Low", Ability: 10}, {ID: 4, Name: "High", Ability: 90}}

	m.SortSubstitutes()
	m.SortReserves()

	assert.Equal(t, []player.ID{2, 1, 0, 0}, ids(m.Substitutes()))
	assert.Equal(t, []player.ID{4, 3}, ids(m.Reserves()))
}

func TestAppendReserve(t *testing.T) {
	m := fullFourFourTwo(t)

	assert.False(t, m.AppendReserve(nil))
	assert.False(t, m.AppendReserve(&player.Player{ID: 40}))
	assert.False(t, m.AppendReserve(newPlayer(1)), "already starting")
	assert.True(t, m.AppendReserve(newPlayer(40)))
	assert.False(t, m.AppendReserve(newPlayer(40)))
	assert.Equal(t, []player.ID{40}, ids(m.Reserves()))
}

func TestClearStartingLineupAndSubstitutes(t *testing.T) {
	m := fullFourFourTwo(t)
	m.substitutes = []*player.Player{newPlayer(12), nil, newPlayer(13), nil}
	m.reserves = []*player.Player{newPlayer(20)}

	m.ClearStartingLineup()

	assert.Len(t, m.Starting(), len(fourFourTwo))
	for _, p := range m.Starting() {
		assert.Nil(t, p)
	}
	assert.Equal(t, []player.ID{20, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, ids(m.Reserves()))

	m.ClearSubstitutes()
	assert.Equal(t, []player.ID{0, 0, 0, 0}, ids(m.Substitutes()))
	assert.Len(t, m.Reserves(), 14)

	m.ClearStartingLineup()
	m.ClearSubstitutes()
	assert.Len(t, m.Reserves(), 14)
}

func TestSyncFormationFromViews(t *testing.T) {
	m := fullFourFourTwo(t)
	bench := newPlayer(12)
	m.substitutes[0] = bench
	keeper := m.Starting()[position.GK]

	dropped := m.SyncFormationFromViews(
		[]position.ID{position.GK, position.DC, position.AMC},
		map[position.ID]*player.Player{
			position.GK:  keeper,
			position.AMC: bench,
			position.MR:  newPlayer(99),
		},
	)

	assert.Equal(t, []position.ID{position.GK, position.DC, position.AMC}, m.Formation())
	starting := m.Starting()
	assert.Len(t, starting, 3)
	assert.Same(t, keeper, starting[position.GK])
	assert.Nil(t, starting[position.DC])
	assert.Same(t, bench, starting[position.AMC])
	assert.Nil(t, m.Substitutes()[0])
	assert.Len(t, dropped, 10)
}

func TestAccessorsReturnCopies(t *testing.T) {
	m := fullFourFourTwo(t)
	m.reserves = []*player.Player{newPlayer(20)}

	m.Starting()[position.GK] = nil
	m.Substitutes()[0] = newPlayer(50)
	reserves := m.Reserves()
	reserves[0] = nil

	assert.NotNil(t, m.Starting()[position.GK])
	assert.Nil(t, m.Substitutes()[0])
	assert.NotNil(t, m.Reserves()[0])
}

func TestValidAndFind(t *testing.T) {
	m := fullFourFourTwo(t)
	m.reserves = []*player.Player{newPlayer(20)}

	assert.True(t, m.Valid(StartingAt(position.DL)))
	assert.False(t, m.Valid(StartingAt(position.DC)))
	assert.True(t, m.Valid(BenchAt(3)))
	assert.False(t, m.Valid(BenchAt(4)))
	assert.True(t, m.Valid(ReserveAt(0)))
	assert.False(t, m.Valid(ReserveAt(1)))
	assert.False(t, m.Valid(Location{}))

	loc, ok := m.Find(20)
	require.True(t, ok)
	assert.Equal(t, ReserveAt(0), loc)
	loc, ok = m.Find(5)
	require.True(t, ok)
	assert.Equal(t, StartingAt(position.DR), loc)
	_, ok = m.Find(77)
	assert.False(t, ok)
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw     string
		want    Location
		wantErr bool
	}{
		{raw: "starting:dc", want: StartingAt(position.DC)},
		{raw: "bench:2", want: BenchAt(2)},
		{raw: "Reserve:0", want: ReserveAt(0)},
		{raw: "bench:x", wantErr: true},
		{raw: "pitch:1", wantErr: true},
		{raw: "bench", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, raw string) Location {
	t.Helper()
	loc, err := ParseLocation(raw)
	require.NoError(t, err)
	return loc
}

type fakeResolver map[player.ID]*player.Player

func (f fakeResolver) PlayerByID(id player.ID) (*player.Player, bool) {
	p, ok := f[id]
	return p, ok
}

func TestFromTacticAndApplyTo(t *testing.T) {
	tc := tactic.FromFormation(nil, []position.ID{position.GK, position.DC, position.STC})
	tc.AssignPlayersToPosition([]player.ID{1, 2, 404})
	tc.SetSubstitutes([]player.ID{3, player.NoID, 1, 4})
	tc.SetReserves([]player.ID{5, 2})

	resolver := fakeResolver{}
	for i := int64(1); i <= 5; i++ {
		resolver[player.ID(i)] = newPlayer(i)
	}

	m := FromTactic(tc, resolver, 2)

	starting := m.Starting()
	assert.Equal(t, player.ID(1), player.IDOf(starting[position.GK]))
	assert.Equal(t, player.ID(2), player.IDOf(starting[position.DC]))
	assert.Nil(t, starting[position.STC], "unknown ids are dropped")
	assert.Equal(t, []player.ID{3, 0}, ids(m.Substitutes()))
	assert.Equal(t, []player.ID{5, 4}, ids(m.Reserves()))

	m.SwapPlayers(StartingAt(position.STC), ReserveAt(0))
	m.ApplyTo(tc)

	assert.Equal(t, map[position.ID]player.ID{position.GK: 1, position.DC: 2, position.STC: 5}, tc.StartingPlayers())
	assert.Equal(t, []player.ID{3, player.NoID}, tc.Substitutes())
	assert.Equal(t, []player.ID{4}, tc.Reserves())
}

type recorder struct {
	data     int
	subs     []int
	reserves []int
}

func (r *recorder) listener() Listener {
	return ListenerFuncs{
		DataChanged:             func() { r.data++ },
		SubstitutesCountChanged: func(n int) { r.subs = append(r.subs, n) },
		ReservesCountChanged:    func(n int) { r.reserves = append(r.reserves, n) },
	}
}

func TestEvents_OnePerOperation(t *testing.T) {
	m := NewModel(3, []position.ID{position.GK})
	m.reserves = []*player.Player{newPlayer(1), newPlayer(2)}
	m.notifiedReserves = 2
	rec := &recorder{}
	m.Subscribe(rec.listener())

	m.SwapPlayers(ReserveAt(0), BenchAt(0))

	assert.Equal(t, 1, rec.data)
	assert.Equal(t, []int{1}, rec.subs)
	assert.Equal(t, []int{1}, rec.reserves)

	m.SwapPlayers(BenchAt(0), BenchAt(2))
	assert.Equal(t, 2, rec.data)
	assert.Equal(t, []int{1}, rec.subs, "count unchanged")
}

func TestEvents_NestedBatchFiresOnce(t *testing.T) {
	m := NewModel(3, []position.ID{position.GK})
	rec := &recorder{}
	unsubscribe := m.Subscribe(rec.listener())

	m.BeginUpdate()
	assert.True(t, m.AppendReserve(newPlayer(1)))
	m.BeginUpdate()
	m.SwapPlayers(ReserveAt(0), BenchAt(1))
	assert.True(t, m.AppendReserve(newPlayer(2)))
	m.EndUpdate()
	assert.Equal(t, 0, rec.data, "inner EndUpdate must not flush")
	m.EndUpdate()

	assert.Equal(t, 1, rec.data)
	assert.Equal(t, []int{1}, rec.subs)
	assert.Equal(t, []int{1}, rec.reserves)

	unsubscribe()
	m.ClearSubstitutes()
	assert.Equal(t, 1, rec.data)

	m.EndUpdate()
	assert.False(t, m.InUpdate())
}

func TestEvents_NoChangeNoEvent(t *testing.T) {
	m := NewModel(2, nil)
	rec := &recorder{}
	m.Subscribe(rec.listener())

	m.CompactSubstitutes()
	m.CompactReserves()
	m.ClearStartingLineup()
	m.SwapPlayers(BenchAt(5), ReserveAt(5))

	assert.Equal(t, 0, rec.data)
}
