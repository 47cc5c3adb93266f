package utils

import "time"


//=========================================== Exponential Backoff


/*
	bounded retry with exponentially increasing wait between attempts

	the strategy is given an operation to perform:
		1.) attempt the operation, and on success return the result immediately
		2.) on failure, sleep for the current timeout period, double the timeout,
			and retry
		3.) once max retries have been exhausted, give up and return the last error
			--> the caller decides what an abandoned operation means (for replication,
				the peer is simply left behind and caught up later by reconciliation)
*/

type ExpBackoffOpts struct {
	MaxRetries *int
	TimeoutInMilliseconds int
}

type ExponentialBackoffStrat [T any] struct {
	initialTimeout time.Duration
	currentTimeout time.Duration
	maxRetries int
	currentRetry int
}

const DefaultMaxRetries = 5

func NewExponentialBackoffStrat [T any](opts ExpBackoffOpts) *ExponentialBackoffStrat[T] {
	maxRetries := DefaultMaxRetries
	if opts.MaxRetries != nil { maxRetries = *opts.MaxRetries }

	initialTimeout := time.Duration(opts.TimeoutInMilliseconds) * time.Millisecond

	return &ExponentialBackoffStrat[T]{
		initialTimeout: initialTimeout,
		currentTimeout: initialTimeout,
		maxRetries: maxRetries,
		currentRetry: 0,
	}
}

func (expStrat *ExponentialBackoffStrat[T]) PerformBackoff(operation func() (T, error)) (T, error) {
	var lastErr error

	for expStrat.currentRetry < expStrat.maxRetries {
		res, err := operation()
		if err == nil { return res, nil }

		lastErr = err

		time.Sleep(expStrat.currentTimeout)

		expStrat.currentTimeout = expStrat.currentTimeout * 2
		expStrat.currentRetry++
	}

	return GetZero[T](), lastErr
}

func (expStrat *ExponentialBackoffStrat[T]) Reset() {
	expStrat.currentTimeout = expStrat.initialTimeout
	expStrat.currentRetry = 0
}
