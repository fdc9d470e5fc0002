package importer

import (
	"strings"

	"inventory-audit/feature/inventory/models"
)

// Markers used by the legacy spreadsheet in the employee and status columns.
const (
	writeOffEmployee  = "Списание"
	caretakerEmployee = "Комендант"
	writeOffStatus    = "списан"
)

var typeKeywords = []struct {
	typ      string
	keywords []string
}{
	{models.TypeLaptop, []string{"ноутбук", "laptop", "notebook"}},
	{models.TypeMonitor, []string{"монитор", "monitor"}},
	{models.TypePrinter, []string{"принтер", "printer"}},
	{models.TypeScanner, []string{"сканер", "scanner"}},
	{models.TypeServer, []string{"сервер", "server"}},
	{models.TypeNetwork, []string{"коммутатор", "переключатель", "роутер", "маршрутизатор", "switch", "router", "d-link", "tp-link", "netgear"}},
	{models.TypePC, []string{"пк", "персональный компьютер", "системный блок", "неттоп", "core i", "intel"}},
	{models.TypeMFP, []string{"мфу"}},
}

// ClassifyType guesses the equipment type from its name. The first matching
// keyword group wins; unmatched names are TypeOther.
func ClassifyType(name string) string {
	lower := strings.ToLower(name)
	for _, group := range typeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.typ
			}
		}
	}
	return models.TypeOther
}

// ClassifyStatus maps the legacy status column to an equipment status.
func ClassifyStatus(status string) string {
	if strings.Contains(strings.ToLower(status), writeOffStatus) {
		return models.StatusDisposed
	}
	return models.StatusActive
}
