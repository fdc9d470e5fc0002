// Package workplace manages workplaces and their primary occupants.
package workplace
