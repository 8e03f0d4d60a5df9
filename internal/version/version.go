// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package version

// Version is the current semantic version of transferd.
var Version = "v0.4.0"
