package application

import (
	"context"
	"fmt"
	"testing"

	"coinwatch/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_Overview(t *testing.T) {
	t.Parallel()
	goals := &fakeGoalRepo{store: map[string]string{"bitcoin": "50000"}}
	svc := NewCoinService(&fakePriceSource{out: sampleSet()}, goals)

	set, got, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Equal(t, domain.GoalMapping{"bitcoin": "50000"}, got)
}

func Test_Overview_GoalStoreFailureDegrades(t *testing.T) {
	t.Parallel()
	svc := NewCoinService(&fakePriceSource{out: sampleSet()}, &fakeGoalRepo{err: ErrRepo})

	set, got, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, set, 2)
	require.Empty(t, got)
}

func Test_Overview_Upstream(t *testing.T) {
	t.Parallel()
	src := &fakePriceSource{err: fmt.Errorf("boom: %w", ErrUpstream)}
	svc := NewCoinService(src, &fakeGoalRepo{})

	_, _, err := svc.Overview(context.Background())
	require.ErrorIs(t, err, ErrUpstream)
}

func Test_Coin_CaseInsensitive(t *testing.T) {
	t.Parallel()
	goals := &fakeGoalRepo{store: map[string]string{"ethereum": "2500"}}
	svc := NewCoinService(&fakePriceSource{out: sampleSet()}, goals)

	c, goal, err := svc.Coin(context.Background(), "EtHeReUm")
	require.NoError(t, err)
	require.Equal(t, "Ethereum", c.Name)
	require.Equal(t, "2500", goal)
}

func Test_Coin_NotFound(t *testing.T) {
	t.Parallel()
	src := &fakePriceSource{out: sampleSet()}
	svc := NewCoinService(src, &fakeGoalRepo{})

	_, _, err := svc.Coin(context.Background(), "bogus-coin")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, src.calls)
}

func Test_SetGoal(t *testing.T) {
	t.Parallel()
	goals := &fakeGoalRepo{}
	svc := NewCoinService(&fakePriceSource{}, goals)

	require.NoError(t, svc.SetGoal(context.Background(), "Bitcoin", "50000"))
	require.NoError(t, svc.SetGoal(context.Background(), "Bitcoin", "50000"))
	require.Equal(t, map[string]string{"bitcoin": "50000"}, goals.store)

	require.NoError(t, svc.SetGoal(context.Background(), "not-a-coin", "soon"))
	require.Equal(t, "soon", goals.store["not-a-coin"])
}

func Test_SetGoal_Missing(t *testing.T) {
	t.Parallel()
	svc := NewCoinService(&fakePriceSource{}, &fakeGoalRepo{})

	require.ErrorIs(t, svc.SetGoal(context.Background(), "", "1"), ErrBadRequest)
	require.ErrorIs(t, svc.SetGoal(context.Background(), "bitcoin", ""), ErrBadRequest)
}
