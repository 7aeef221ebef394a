package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/proposals/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exec order in an update save: #1 append history entry, #2 update current
// row, #3 prune history documents (only with a limit).

func TestSave_RollbackWhenRecordUpdateFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	svc := NewProposalService(testutil.NewTestUoW(database))
	id, err := svc.Save(ctx, scenarioInput())
	require.NoError(t, err)
	current, err := svc.Load(ctx, id)
	require.NoError(t, err)

	failing := NewProposalService(&testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected update failure"),
	})
	_, err = failing.Save(ctx, withLineCost(current, "eq-1", 600))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "injected update failure")

	got, err := svc.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version, "version unchanged after rollback")
	assert.Empty(t, got.VersionHistory, "history entry rolled back with the record")
	assert.Equal(t, 500.0, got.TotalValue)
}

func TestSave_RollbackWhenHistoryAppendFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	svc := NewProposalService(testutil.NewTestUoW(database))
	id, err := svc.Save(ctx, scenarioInput())
	require.NoError(t, err)
	current, err := svc.Load(ctx, id)
	require.NoError(t, err)

	failing := NewProposalService(&testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 1,
		Err:    fmt.Errorf("injected append failure"),
	})
	_, err = failing.Save(ctx, withLineCost(current, "eq-1", 600))
	require.Error(t, err)

	got, err := svc.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Empty(t, got.VersionHistory)
}

func TestSave_RollbackWhenPruneFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	svc := NewProposalService(testutil.NewTestUoW(database))
	id, err := svc.Save(ctx, scenarioInput())
	require.NoError(t, err)
	current, err := svc.Load(ctx, id)
	require.NoError(t, err)

	failing := NewProposalService(&testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 3,
		Err:    fmt.Errorf("injected prune failure"),
	}, WithHistoryDocumentLimit(1))
	_, err = failing.Save(ctx, withLineCost(current, "eq-1", 600))
	require.Error(t, err)

	got, err := svc.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Empty(t, got.VersionHistory)
}

func TestSave_RollbackWhenCreateFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	failing := NewProposalService(&testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 1,
		Err:    fmt.Errorf("injected insert failure"),
	})
	_, err := failing.Save(ctx, scenarioInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)

	list, err := failing.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Delete removes history first (#1), then the record (#2).
func TestDelete_RollbackKeepsRecordAndHistory(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	svc := NewProposalService(testutil.NewTestUoW(database))
	id, err := svc.Save(ctx, scenarioInput())
	require.NoError(t, err)
	current, err := svc.Load(ctx, id)
	require.NoError(t, err)
	_, err = svc.Save(ctx, withLineCost(current, "eq-1", 600))
	require.NoError(t, err)

	failing := NewProposalService(&testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected delete failure"),
	})
	removed, err := failing.Delete(ctx, id)
	require.Error(t, err)
	assert.False(t, removed)
	assert.Contains(t, err.Error(), "delete proposal")

	got, err := svc.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Version)
	assert.Len(t, got.VersionHistory, 1)
}
