package ats

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-analyzer/internal/types"
)

func TestAnalyzeBatch(t *testing.T) {
	items := []BatchItem{
		{Label: "complete", Resume: completeResume()},
		{Label: "missing", Resume: nil},
		{Label: "with job", Resume: completeResume(), JobDescription: "Kubernetes and Terraform"},
		{Label: "empty", Resume: &types.ResumeSnapshot{}},
	}

	results, err := AnalyzeBatch(context.Background(), items, 2)
	require.NoError(t, err)
	require.Len(t, results, len(items))

	for i, item := range items {
		assert.Equal(t, item.Label, results[i].Label)
	}

	assert.Equal(t, 100, results[0].Result.TotalScore)
	assert.Empty(t, results[0].Error)

	assert.Nil(t, results[1].Result)
	assert.Contains(t, results[1].Error, "invalid input")

	require.NotNil(t, results[2].Result)
	assert.NotNil(t, results[2].Result.Breakdown.JobMatch)

	assert.Equal(t, 10, results[3].Result.TotalScore)
}

func TestAnalyzeBatch_MatchesSequential(t *testing.T) {
	var items []BatchItem
	for i := 0; i < 20; i++ {
		resume := completeResume()
		if i%2 == 1 {
			resume.PersonalInfo.Email = ""
		}
		items = append(items, BatchItem{Label: fmt.Sprintf("r%d", i), Resume: resume, JobDescription: "Go Kubernetes AWS"})
	}

	results, err := AnalyzeBatch(context.Background(), items, 0)
	require.NoError(t, err)

	for i, item := range items {
		want, err := Analyze(item.Resume, item.JobDescription)
		require.NoError(t, err)
		assert.Equal(t, want, results[i].Result, item.Label)
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	results, err := AnalyzeBatch(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestAnalyzeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeBatch(ctx, []BatchItem{{Label: "a", Resume: completeResume()}}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
