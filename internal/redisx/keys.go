package redisx

import "time"

const (
	// Session token -> user id: session:{token}
	KeySession = "session:%s"
)

var (
	TTLSession = 24 * time.Hour
)
