// SPDX-License-Identifier: MIT

// Package parmv: functional configuration for Multiply.
//
// Options are per call; nothing is global. Setters panic only on values that
// can never be valid (programmer error).
package parmv

import "github.com/pion/logging"

const (
	// DefaultTag is the message tag of the redistribution step.
	DefaultTag = 0

	// LoggerScope is the pion/logging scope used by this package.
	LoggerScope = "parmv"
)

const panicTagInvalid = "parmv: WithTag: tag must be >= 0"

// StateHook observes state transitions: it is called with the caller's world
// rank each time Multiply enters a state, starting with Init. It runs on the
// calling goroutine and must not block.
type StateHook func(rank int, s State)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tag           int                   // DefaultTag
	hook          StateHook             // nil: no observer
	loggerFactory logging.LoggerFactory // logging.NewDefaultLoggerFactory()
}

// WithTag sets the point-to-point tag used to move x fragments to the diagonal.
// Panics on negative tags, which the substrate reserves.
func WithTag(tag int) Option {
	if tag < 0 {
		panic(panicTagInvalid)
	}

	return func(o *Options) { o.tag = tag }
}

// WithStateHook installs an observer of state transitions.
func WithStateHook(h StateHook) Option {
	return func(o *Options) { o.hook = h }
}

// WithLoggerFactory injects the pion/logging factory used for the "parmv"
// scope. A nil factory keeps the default.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(o *Options) {
		if f != nil {
			o.loggerFactory = f
		}
	}
}

// gatherOptions resolves defaults and user setters (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{tag: DefaultTag}
	for _, set := range user {
		set(&o)
	}
	if o.loggerFactory == nil {
		o.loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return o
}
