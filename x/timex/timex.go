// Package timex carries timestamp helpers that work on both host and MCU
// builds.
package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }
