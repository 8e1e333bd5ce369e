package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/beniamp/orders-tracking/internal/config"
	"github.com/beniamp/orders-tracking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportCacheDisabled(t *testing.T) {
	c, err := NewReportCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	key := ReportKey{Start: "1403-01-01", End: "1403-01-07", ShadowCount: 1}

	report, ok, err := c.GetComparison(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, report)

	require.NoError(t, c.SetComparison(ctx, key, &domain.ComparisonReport{Days: 7}))

	// the noop cache never hits, so a startup flush is always safe
	require.NoError(t, c.InvalidateAll(ctx))
	_, ok, err = c.GetComparison(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildKey(t *testing.T) {
	base := ReportKey{Start: "1403-01-01", End: "1403-01-07", Category: "Phones", ShadowCount: 1}

	assert.True(t, strings.HasPrefix(buildKey(comparisonKeyPrefix, base), "report:comparison:"))
	assert.True(t, strings.HasPrefix(buildKey(balanceKeyPrefix, base), "report:balance:"))

	// same inputs hash to the same key, any field change to a new one
	assert.Equal(t, buildKey(comparisonKeyPrefix, base), buildKey(comparisonKeyPrefix, base))

	other := base
	other.ShadowCount = 4
	assert.NotEqual(t, buildKey(comparisonKeyPrefix, base), buildKey(comparisonKeyPrefix, other))
}
