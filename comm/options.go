// SPDX-License-Identifier: MIT

// Package comm: functional configuration for the in-memory substrate.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package comm

import "github.com/pion/logging"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMailboxDepth is the number of messages a route buffers before
	// Send blocks. One slot gives eager-send semantics for the small, strictly
	// paired exchanges of the protocol.
	DefaultMailboxDepth = 1

	// LoggerScope is the pion/logging scope used by this package.
	LoggerScope = "comm"
)

const panicMailboxDepthInvalid = "comm: WithMailboxDepth: depth must be >= 0"

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	mailboxDepth  int                   // DefaultMailboxDepth
	loggerFactory logging.LoggerFactory // logging.NewDefaultLoggerFactory()
}

// WithMailboxDepth sets how many messages each route buffers.
// Depth 0 makes every Send a rendezvous with the matching Recv.
// Panics on negative depth.
func WithMailboxDepth(depth int) Option {
	if depth < 0 {
		panic(panicMailboxDepthInvalid)
	}

	return func(o *Options) { o.mailboxDepth = depth }
}

// WithLoggerFactory injects the pion/logging factory used for the "comm" scope.
// A nil factory keeps the default.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(o *Options) {
		if f != nil {
			o.loggerFactory = f
		}
	}
}

// gatherOptions resolves defaults and user setters (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		mailboxDepth: DefaultMailboxDepth,
	}
	for _, set := range user {
		set(&o)
	}
	if o.loggerFactory == nil {
		o.loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return o
}
