// cmd/root_test.go
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbnguyen/covidtracker/dates"
	"github.com/tbnguyen/covidtracker/services"
	"github.com/tbnguyen/covidtracker/store"
)

// withTestService pins the package-level service to one with a fixed
// latest date. resolveDateFlag and resolveDaysFlag never touch the
// network, so no report source is needed.
func withTestService(t *testing.T, latest string) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	day, err := dates.ParseCanonical(latest)
	require.NoError(t, err)

	old := svc
	svc = services.NewTrackerService(st, nil, day)
	t.Cleanup(func() { svc = old })
}

func TestResolveDateFlag(t *testing.T) {
	withTestService(t, "12-31-2020")

	for _, value := range []string{"", "latest"} {
		got, err := resolveDateFlag(value)
		require.NoError(t, err)
		assert.Equal(t, "12-31-2020", got)
	}

	got, err := resolveDateFlag("15-12-2020") // day-first
	require.NoError(t, err)
	assert.Equal(t, "12-15-2020", got)

	_, err = resolveDateFlag("not a date")
	assert.Error(t, err)
}

func TestResolveDateFlagCapsFutureDates(t *testing.T) {
	withTestService(t, "12-31-2020")

	got, err := resolveDateFlag("06-01-2021")
	require.NoError(t, err)
	assert.Equal(t, "12-31-2020", got)
}

func TestResolveDateFlagFloorsPreOriginDates(t *testing.T) {
	withTestService(t, "12-31-2020")

	// A valid canonical date before the first report must fall back to
	// the origin date instead of producing an empty series downstream.
	got, err := resolveDateFlag("01-15-2020")
	require.NoError(t, err)
	assert.Equal(t, dates.Format(dates.OriginDate), got)
}

func TestResolveDaysFlag(t *testing.T) {
	withTestService(t, "12-06-2020") // 5 days of data including the origin

	n, err := resolveDaysFlag("max")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = resolveDaysFlag("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// More days than exist clamps to the maximum.
	n, err = resolveDaysFlag("400")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	for _, value := range []string{"0", "-1", "five"} {
		_, err = resolveDaysFlag(value)
		assert.Error(t, err, "value %q", value)
	}
}

// closableStore records whether Close was called.
type closableStore struct {
	store.Store
	closed bool
}

func (c *closableStore) Close() error {
	c.closed = true
	return nil
}

func TestCloseStoreReleasesCloser(t *testing.T) {
	old := cacheStore
	t.Cleanup(func() { cacheStore = old })

	cs := &closableStore{}
	cacheStore = cs
	closeStore()
	assert.True(t, cs.closed)

	// A backend without a Close method is left alone.
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	cacheStore = st
	closeStore()
}
