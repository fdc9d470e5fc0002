// Package employee manages the employee directory.
//
// Employees are deactivated rather than removed; lists hide inactive records
// unless includeInactive is set.
package employee
