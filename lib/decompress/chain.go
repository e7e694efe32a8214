// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"errors"
	"fmt"
)

// Strategy names, in chain order.
const (
	StrategySizedBlock    = "sized-block"
	StrategyPrefixedBlock = "prefixed-block"
	StrategyRaw           = "raw"
	StrategyFrame         = "frame"
)

// Input is the part of an extension unit the strategies look at.
type Input struct {
	Header  []byte
	Payload []byte
}

// Strategy is one way of turning an [Input] into an uncompressed
// buffer. Attempt must not retain or modify the input slices.
type Strategy struct {
	Name        string
	Description string
	Attempt     func(input Input) ([]byte, error)
}

// Attempt records the outcome of running one strategy. Err is nil for
// the strategy that succeeded.
type Attempt struct {
	Strategy string
	Err      error
}

// Result is the outcome of [Chain.Run].
type Result struct {
	// Recovered is true when some strategy produced a buffer.
	Recovered bool

	// Raw is the recovered buffer. Nil when Recovered is false.
	Raw []byte

	// Strategy names the strategy that produced Raw.
	Strategy string

	// Attempts lists every strategy that ran, in order.
	Attempts []Attempt
}

// Err returns nil when the chain recovered a buffer, otherwise
// [ErrChainExhausted] joined with each strategy's failure.
func (r Result) Err() error {
	if r.Recovered {
		return nil
	}
	errs := []error{ErrChainExhausted}
	for _, attempt := range r.Attempts {
		if attempt.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", attempt.Strategy, attempt.Err))
		}
	}
	return errors.Join(errs...)
}

// Chain is an ordered list of strategies.
type Chain []Strategy

// Run tries each strategy in order and stops at the first success.
func (c Chain) Run(input Input) Result {
	result := Result{Attempts: make([]Attempt, 0, len(c))}
	for _, strategy := range c {
		raw, err := strategy.Attempt(input)
		if err == nil && len(raw) == 0 {
			err = fmt.Errorf("empty output: %w", ErrCorrupt)
		}
		result.Attempts = append(result.Attempts, Attempt{Strategy: strategy.Name, Err: err})
		if err == nil {
			result.Recovered = true
			result.Raw = raw
			result.Strategy = strategy.Name
			return result
		}
	}
	return result
}

// Names returns the strategy names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for index, strategy := range c {
		names[index] = strategy.Name
	}
	return names
}

// Options configures [NewChain].
type Options struct {
	// MaxOutputBytes caps the uncompressed size any strategy may
	// produce. Zero disables the cap.
	MaxOutputBytes int

	// ValidateRaw decides whether an uncompressed payload is usable
	// as-is. It should return nil only when the whole buffer is a
	// complete MessagePack value sequence. A nil ValidateRaw accepts
	// any non-empty payload.
	ValidateRaw func(data []byte) error
}

// NewChain returns the standard strategy order: sized-block,
// prefixed-block, raw, frame.
func NewChain(options Options) Chain {
	return Chain{
		{
			Name:        StrategySizedBlock,
			Description: "LZ4 block, uncompressed size taken from the extension header",
			Attempt: func(input Input) ([]byte, error) {
				return sizedBlock(input, options.MaxOutputBytes)
			},
		},
		{
			Name:        StrategyPrefixedBlock,
			Description: "LZ4 block after a little-endian size prefix that repeats the header size",
			Attempt: func(input Input) ([]byte, error) {
				return prefixedBlock(input, options.MaxOutputBytes)
			},
		},
		{
			Name:        StrategyRaw,
			Description: "payload is already uncompressed MessagePack",
			Attempt: func(input Input) ([]byte, error) {
				return rawPayload(input, options.ValidateRaw)
			},
		},
		{
			Name:        StrategyFrame,
			Description: "self-describing LZ4 frame",
			Attempt: func(input Input) ([]byte, error) {
				return Frame(input.Payload, options.MaxOutputBytes)
			},
		},
	}
}

func sizedBlock(input Input, maxOutput int) ([]byte, error) {
	var errs []error
	for _, size := range sizeCandidates(input.Header) {
		if !plausibleSize(size, len(input.Payload), maxOutput) {
			continue
		}
		raw, err := Block(input.Payload, int(size))
		if err == nil {
			return raw, nil
		}
		errs = append(errs, fmt.Errorf("size %d: %w", size, err))
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no plausible size in header %x for %d payload bytes: %w",
			input.Header, len(input.Payload), ErrNotApplicable)
	}
	return nil, errors.Join(errs...)
}

// prefixWidths are the embedded size-prefix widths tried, widest first.
var prefixWidths = []int{4, 2, 1}

func prefixedBlock(input Input, maxOutput int) ([]byte, error) {
	size, ok := declaredSize(input.Header)
	if !ok {
		return nil, fmt.Errorf("header %x holds no size: %w", input.Header, ErrNotApplicable)
	}

	var errs []error
	for _, width := range prefixWidths {
		if len(input.Payload) <= width {
			continue
		}
		if littleEndian(input.Payload[:width]) != size {
			continue
		}
		if !plausibleSize(size, len(input.Payload)-width, maxOutput) {
			continue
		}
		raw, err := Block(input.Payload[width:], int(size))
		if err == nil {
			return raw, nil
		}
		errs = append(errs, fmt.Errorf("prefix width %d: %w", width, err))
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("no payload prefix matches size %d: %w", size, ErrNotApplicable)
	}
	return nil, errors.Join(errs...)
}

func rawPayload(input Input, validate func([]byte) error) ([]byte, error) {
	if len(input.Payload) == 0 {
		return nil, fmt.Errorf("empty payload: %w", ErrNotApplicable)
	}
	if HasFrameMagic(input.Payload) {
		return nil, fmt.Errorf("payload starts with an lz4 frame magic: %w", ErrNotApplicable)
	}
	if validate != nil {
		if err := validate(input.Payload); err != nil {
			return nil, fmt.Errorf("payload is not plain MessagePack: %w", err)
		}
	}
	return input.Payload, nil
}
