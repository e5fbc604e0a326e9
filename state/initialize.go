package state

import (
	"time"

	"github.com/google/uuid"

	"wse/common"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		RunID:  uuid.New(),
		Format: common.OutputFmtMediawiki,
	}
}
