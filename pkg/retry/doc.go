// Package retry re-executes flaky operations according to a configurable
// policy until success, a stop condition, or a non-retryable failure.
//
// Key pieces:
//
// 1. Stop strategies (when to give up):
//   - NeverStop: retry indefinitely (default)
//   - StopAfterAttempts: bound the number of attempts
//   - StopAfterDelay: bound the total elapsed time
//   - StopAny: logical OR over several strategies
//
// 2. Wait strategies (how long to sleep between attempts):
//   - NoWait: retry immediately (default)
//   - FixedWait: constant delay
//   - RandomWait: uniform delay in [min, max)
//   - ExponentialWait: doubling delay with a cap
//   - IncrementingWait: linearly growing delay with a cap
//
// 3. Predicates (which outcomes warrant another attempt):
//   - ErrorPredicate: consulted for failures; default retries every error
//   - ResultPredicate: consulted for returned values; default accepts any
//     value as final
//
// 4. Executor: runs the attempt loop on the caller's goroutine, sleeping
// between attempts on an injectable clock so tests stay deterministic.
//
// Basic usage:
//
//	policy, err := retry.NewPolicy(
//		retry.WithMaxAttempts(5),
//		retry.WithExponentialWait(100*time.Millisecond, 10*time.Second),
//	)
//	if err != nil {
//		return err
//	}
//
//	executor := retry.NewExecutor(policy)
//	body, err := retry.Do(executor, ctx, func(ctx context.Context) ([]byte, error) {
//		return fetch(ctx, url)
//	})
//
// Retrying on unsatisfactory results rather than errors:
//
//	policy, err := retry.NewPolicy(
//		retry.WithMaxAttempts(4),
//		retry.WithRetryOnResult(func(v any) bool { return v == nil }),
//	)
//
// Wrapping an operation once and calling it like the original:
//
//	reliableFetch := retry.Wrap(executor, fetch)
//	body, err := reliableFetch(ctx)
//
// Exhaustion reporting:
//
//	policy, err := retry.NewPolicy(
//		retry.WithMaxAttempts(7),
//		retry.WithWrapError(true),
//	)
//	// ...
//	if retryErr := new(retry.RetryError); errors.As(err, &retryErr) {
//		log.Printf("gave up after %d attempts", retryErr.Attempts())
//	}
//
// Failures rejected by the error predicate propagate to the caller
// unchanged and are never wrapped, regardless of WithWrapError.
//
// Policies and executors are immutable after construction and safe to share
// across goroutines; every Do call keeps its own loop state. Invalid
// parameters (random wait with min > max, a non-positive exponential
// multiplier, max attempts below 1) are rejected by NewPolicy, never
// mid-loop.
package retry
