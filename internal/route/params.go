// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit int64 = 10
	maxLimit     int64 = 1000
)

// ReadOffset returns the "offset" query param from a request or zero if it's missing.
func ReadOffset(r *http.Request) int64 {
	return readIntQueryParam(r, "offset", 0, maxLimit*maxLimit)
}

// ReadLimit returns the "limit" query param from a request, capped at 1000.
// The default page size is 10.
func ReadLimit(r *http.Request) int64 {
	return readIntQueryParam(r, "limit", defaultLimit, maxLimit)
}

func readIntQueryParam(r *http.Request, key string, missing, max int64) int64 {
	if v := r.URL.Query().Get(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return missing
		}
		if n > max {
			return max
		}
		return n
	}
	return missing
}
