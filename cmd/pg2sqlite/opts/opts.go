package opts

import (
	"github.com/walteh/pg2sqlite/pkg/config"
	"github.com/walteh/pg2sqlite/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Logger     *log.Logger
	UserLogger *log.UserLogger
}
