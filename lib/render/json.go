// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/blockarray/lib/msgtree"
)

// JSONObject builds the json view of a report: the best raw buffer
// and its digest, how it was obtained, the original unit's shape, the
// re-serialized envelope, and the human view under "human_readable".
func JSONObject(report Report) msgtree.Object {
	raw := report.BestRaw()
	digest := blake3.Sum256(raw)

	var strategy any
	if report.Chain.Recovered {
		strategy = report.Chain.Strategy
	}

	attempts := make([]any, len(report.Chain.Attempts))
	for index, attempt := range report.Chain.Attempts {
		var failure any
		if attempt.Err != nil {
			failure = attempt.Err.Error()
		}
		attempts[index] = msgtree.Object{
			{Key: "strategy", Value: attempt.Strategy},
			{Key: "error", Value: failure},
		}
	}

	object := msgtree.Object{
		{Key: "raw_hex", Value: hex.EncodeToString(raw)},
		{Key: "raw_length", Value: len(raw)},
		{Key: "raw_blake3", Value: hex.EncodeToString(digest[:])},
		{Key: "success", Value: report.Status() == StatusDecoded},
		{Key: "status", Value: report.Status().String()},
		{Key: "strategy", Value: strategy},
		{Key: "attempts", Value: attempts},
		{Key: "original_ext_type", Value: int(report.Unit.Tag())},
		{Key: "original_header_hex", Value: hex.EncodeToString(report.Unit.Header())},
		{Key: "original_payload_length", Value: len(report.Unit.Payload())},
	}

	if envelope, err := report.Unit.Envelope(); err == nil {
		object.Set("messagepack_hex", hex.EncodeToString(envelope))
		object.Set("messagepack_length", len(envelope))
	} else {
		object.Set("messagepack_hex", nil)
		object.Set("messagepack_error", err.Error())
	}

	object.Set("human_readable", HumanObject(report))
	return object
}
