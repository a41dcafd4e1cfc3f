package cli

import (
	"os"

	"github.com/petdoor-tools/doorsched/internal/config"
	"github.com/petdoor-tools/doorsched/internal/keyring"
)

// Context carries the loaded configuration into every subcommand.
type Context struct {
	Config     *config.Config
	ConfigPath string
}

// Token resolves the hub access token. The environment wins so scripted
// runs can override whatever was configured, then the config file, then
// the OS keyring.
func (c *Context) Token() string {
	if tok := os.Getenv("DOORSCHED_TOKEN"); tok != "" {
		return tok
	}
	if c.Config != nil && c.Config.Hub.Token != "" {
		return c.Config.Hub.Token
	}
	if tok, err := keyring.GetToken(); err == nil {
		return tok
	}
	return ""
}
