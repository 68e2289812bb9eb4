package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse maps a configured value, including the short aliases "prod",
// "stage" and "dev", to an Environment. Unknown values are development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return Parse(string(e)) == Production
}

func (e Environment) String() string {
	return string(e)
}
