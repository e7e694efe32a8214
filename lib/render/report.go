// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"github.com/bureau-foundation/blockarray/lib/blockarray"
	"github.com/bureau-foundation/blockarray/lib/decompress"
	"github.com/bureau-foundation/blockarray/lib/msgtree"
)

// Report is everything one decode run produced.
type Report struct {
	Unit  *blockarray.ExtensionUnit
	Chain decompress.Result

	// Tree is the decode of BestRaw: complete, partial, or failed.
	Tree msgtree.Decoded
}

// Status classifies the report. A run is decoded only when a strategy
// recovered a buffer and that buffer decoded completely.
func (r Report) Status() Status {
	switch {
	case r.Chain.Recovered && r.Tree.Complete():
		return StatusDecoded
	case len(r.Tree.Values) > 0:
		return StatusPartial
	default:
		return StatusRawFallback
	}
}

// BestRaw returns the recovered buffer, or the original payload when
// no strategy succeeded.
func (r Report) BestRaw() []byte {
	if r.Chain.Recovered {
		return r.Chain.Raw
	}
	return r.Unit.Payload()
}
