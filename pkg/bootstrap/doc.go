// Package bootstrap wires configuration, infrastructure and the two-factor
// services into a ready-to-use stack for the binaries under cmd/.
//
//	settings, err := bootstrap.LoadSettings()
//	...
//	app, err := bootstrap.New(ctx, settings, log)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	setup, err := app.Manager.SetupTOTP(ctx, userID)
//
// Build does the same over caller-provided components, which is how tests
// run the stack on the in-memory store.
package bootstrap
