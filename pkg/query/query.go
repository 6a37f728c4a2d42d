// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query parses identity values out of URL path and query strings.

Unlike lenient converters, every function here reports malformed input, so a
handler can answer 400 instead of silently treating garbage as "absent".
*/
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxInt is the largest value accepted; identities are stored as SQL INTEGER.
const MaxInt = math.MaxInt32

// PositiveInt parses a strictly positive base-10 integer no larger than [MaxInt].
func PositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("query: %q is not an integer", raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("query: %d is not positive", value)
	}
	if value > MaxInt {
		return 0, fmt.Errorf("query: %d is out of range", value)
	}
	return value, nil
}

// OptionalInt parses raw with [PositiveInt], treating the empty string as
// absent (0, nil).
func OptionalInt(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return PositiveInt(raw)
}

// IntSlice parses every non-empty value (repeated parameters or
// comma-separated lists) with [PositiveInt].
//
// It returns nil when no value is present.
func IntSlice(vals []string) ([]int, error) {
	var res []int
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := PositiveInt(part)
			if err != nil {
				return nil, err
			}
			res = append(res, id)
		}
	}
	return res, nil
}
