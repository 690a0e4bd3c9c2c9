package common

import "axiapac.com/hrms/core"

// Handler is embedded by every endpoint group.
type Handler struct {
	Service        *core.Service
	MaxUploadBytes int64
}
