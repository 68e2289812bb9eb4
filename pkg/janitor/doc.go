// Package janitor periodically purges expired one-time codes and trusted
// devices.
//
//	j, err := janitor.FromConfig(manager, cfg, janitor.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	err = j.Run(ctx) // blocks until ctx is cancelled
//
// The schedule is either an interval ("1h") or a daily time ("03:30").
package janitor
