package secrets

import "github.com/OpenEOS-Project/openeos-api-sub001/pkg/environment"

// DevelopmentMasterKey is used when no master key is configured outside of
// production. Anything encrypted with it must be treated as public.
const DevelopmentMasterKey = "openeos-development-master-key-do-not-use-in-production"

// Config holds the master key material the cipher derives its key and
// pepper from.
type Config struct {
	MasterKey   string `env:"APP_SECRET"`
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func (c Config) production() bool {
	return environment.Parse(c.Environment).IsProduction()
}
