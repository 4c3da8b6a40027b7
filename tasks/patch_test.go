package tasks_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-taskboard-client/tasks"
)

func TestDiffProducesMinimalPatch(t *testing.T) {
	baseline := tasks.Task{
		ID:          "t1",
		Title:       "Fix login bug",
		Description: "Token not refreshed",
		Priority:    "high",
		Position:    2,
		DueDate:     "2025-06-15",
	}
	edited := baseline
	edited.Title = "Fix login bug (mobile)"
	edited.Priority = "medium"

	patch := tasks.Diff(baseline, edited)
	require.False(t, patch.Empty())
	require.NotNil(t, patch.Title)
	require.Equal(t, "Fix login bug (mobile)", *patch.Title)
	require.NotNil(t, patch.Priority)
	require.Equal(t, "medium", *patch.Priority)
	require.Nil(t, patch.Description)
	require.Nil(t, patch.Position)
	require.Nil(t, patch.DueDate)
}

func TestDiffOfIdenticalTasksIsEmpty(t *testing.T) {
	baseline := tasks.Task{ID: "t1", Title: "Fix login bug", Position: 2}

	patch := tasks.Diff(baseline, baseline)
	require.True(t, patch.Empty())
}

func TestDiffCapturesClearedField(t *testing.T) {
	baseline := tasks.Task{ID: "t1", Title: "Fix login bug", Description: "Token not refreshed"}
	edited := baseline
	edited.Description = ""

	patch := tasks.Diff(baseline, edited)
	require.NotNil(t, patch.Description)
	require.Empty(t, *patch.Description)
}

func TestPatchOmitsUnsetFieldsFromBody(t *testing.T) {
	baseline := tasks.Task{ID: "t1", Title: "Fix login bug"}
	edited := baseline
	edited.Position = 5

	body, err := json.Marshal(tasks.Diff(baseline, edited))
	require.NoError(t, err)
	require.JSONEq(t, `{"position":5}`, string(body))
}

func TestCreateInputValidation(t *testing.T) {
	require.Error(t, tasks.CreateInput{Title: "Fix login bug"}.Validate())
	require.Error(t, tasks.CreateInput{ListID: "l1"}.Validate())
	require.NoError(t, tasks.CreateInput{ListID: "l1", Title: "Fix login bug"}.Validate())
}
