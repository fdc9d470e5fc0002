// Package loader provides the plugin-like feature loading system.
//
// Each feature (equipment, employees, workplaces, audits, integrity) implements
// the Feature interface and is registered with a Manager in the start command.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// Register adds features in order; LoadAll mounts the routes of the enabled ones
// and stops at the first failure.
package loader
