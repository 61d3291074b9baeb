package source

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrajen/sfdx-utility-plugins/internal/constants"
	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
	"github.com/rrajen/sfdx-utility-plugins/internal/testutil"
)

// fakeSleep replaces timeSleep with an immediate channel and records the
// requested durations. Tests using it must not run in parallel.
func fakeSleep(t *testing.T) *[]time.Duration {
	t.Helper()

	var waits []time.Duration
	orig := timeSleep
	timeSleep = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	t.Cleanup(func() { timeSleep = orig })
	return &waits
}

func transient() error {
	return fmt.Errorf("%w: %w", deverrors.ErrFetchFailed, testutil.ErrMockNetwork)
}

func TestRetryFetcher_RecoversAfterTransientErrors(t *testing.T) {
	waits := fakeSleep(t)

	want := mustParse(`{"status": "Succeeded"}`)
	stub := &stubFetcher{results: []stubResult{{err: transient()}, {err: transient()}, {doc: want}}}

	doc, err := NewRetryFetcher(stub, 3, time.Minute).Fetch(context.Background(), testID)
	require.NoError(t, err)
	assert.Same(t, want, doc)
	assert.Equal(t, 3, stub.callCount())
	assert.Equal(t, []time.Duration{constants.InitialBackoff, 2 * constants.InitialBackoff}, *waits)
}

func TestRetryFetcher_GivesUp(t *testing.T) {
	fakeSleep(t)

	stub := &stubFetcher{results: []stubResult{{err: transient()}}}

	_, err := NewRetryFetcher(stub, 2, 0).Fetch(context.Background(), testID)
	require.ErrorIs(t, err, deverrors.ErrFetchFailed)
	require.ErrorIs(t, err, testutil.ErrMockNetwork)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, 2, stub.callCount())
}

func TestRetryFetcher_TerminalErrorsAreNotRetried(t *testing.T) {
	fakeSleep(t)

	for _, terminal := range terminalErrors {
		stub := &stubFetcher{results: []stubResult{{err: deverrors.Wrap(terminal, "fetch")}}}

		_, err := NewRetryFetcher(stub, 3, 0).Fetch(context.Background(), testID)
		require.ErrorIs(t, err, terminal)
		assert.Equal(t, 1, stub.callCount(), terminal.Error())
	}
}

func TestRetryFetcher_AttemptTimeoutIsRetried(t *testing.T) {
	fakeSleep(t)

	want := mustParse(`{}`)
	calls := 0
	slowOnce := FetcherFunc(func(ctx context.Context, _ string) (*deploystatus.Document, error) {
		calls++
		if calls == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return want, nil
	})

	doc, err := NewRetryFetcher(slowOnce, 2, 10*time.Millisecond).Fetch(context.Background(), testID)
	require.NoError(t, err)
	assert.Same(t, want, doc)
	assert.Equal(t, 2, calls)
}

func TestRetryFetcher_ParentCancel(t *testing.T) {
	fakeSleep(t)

	ctx, cancel := context.WithCancel(context.Background())
	stub := FetcherFunc(func(context.Context, string) (*deploystatus.Document, error) {
		cancel()
		return nil, transient()
	})

	_, err := NewRetryFetcher(stub, 3, 0).Fetch(ctx, testID)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, isRetryable(nil))
	assert.False(t, isRetryable(context.Canceled))
	assert.True(t, isRetryable(context.DeadlineExceeded))
	assert.True(t, isRetryable(deverrors.ErrCommandFailed))
	assert.True(t, isRetryable(testutil.ErrMockNetwork))
	assert.False(t, isRetryable(fmt.Errorf("wrapped: %w", deverrors.ErrUnauthorized)))
}

func TestNewRetryFetcher_MinimumOneAttempt(t *testing.T) {
	t.Parallel()

	f := NewRetryFetcher(&stubFetcher{name: "x"}, 0, 0)
	assert.Equal(t, 1, f.maxAttempts)
	assert.Equal(t, "retry(x)", f.Name())
}
