// Package utils provides small conversion helpers shared by handlers and the importer.
package utils
