package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an account, transaction, reward or user reward does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidAmount is returned when an amount is not a positive whole number of coins.
var ErrInvalidAmount = errors.New("amount must be a positive integer")

// ErrInsufficientFunds is returned when a spend would take the balance below zero.
// It is an expected outcome; nothing has been mutated when it is returned.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrRewardUnavailable is returned when redeeming a reward that is switched off.
var ErrRewardUnavailable = errors.New("reward is not available")

// ErrAlreadyUsed is returned when marking a user reward used a second time.
// It matches ErrNotFound: there is no unused reward with that ID.
var ErrAlreadyUsed = fmt.Errorf("%w: user reward already used", ErrNotFound)

// ErrIdempotencyConflict is returned when an idempotency key is reused with a different payload.
var ErrIdempotencyConflict = errors.New("idempotency key reused with a different payload")

// ErrAccountExists is returned when creating an account for a user that already has one.
var ErrAccountExists = errors.New("account already exists")

// ErrConcurrentUpdate is returned when an optimistic write kept losing to concurrent writers.
var ErrConcurrentUpdate = errors.New("account was modified concurrently")
