package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/voteguard/internal/storage/memdb"
)

type failingChecker struct{}

func (failingChecker) HealthCheck(context.Context) (interface{}, error) {
	return nil, errors.New("boom")
}

func TestReportAllHealthy(t *testing.T) {
	checkers := New()
	checkers.Register("storage", NewStorageChecker(memdb.New()))

	report := checkers.Report(context.Background())
	require.True(t, report.Healthy)
	require.Len(t, report.Checks, 1)
}

func TestReportUnhealthyComponent(t *testing.T) {
	checkers := New()
	checkers.Register("storage", NewStorageChecker(memdb.New()))
	checkers.Register("broken", failingChecker{})

	report := checkers.Report(context.Background())
	require.False(t, report.Healthy)
	require.Len(t, report.Checks, 2)
}
