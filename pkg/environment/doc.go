// Package environment names the deployment environments the services run in
// and normalises configured values ("prod", "stage", "dev" and their long
// forms) into one of them.
//
// The environment decides fail-fast behaviour at startup: in production a
// missing master secret stops the process, elsewhere a development fallback
// is used. It also picks the logger defaults in the logger package.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // strict checks
//	}
package environment
