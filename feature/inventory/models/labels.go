package models

// Equipment types.
const (
	TypePC      = "PC"
	TypeLaptop  = "Laptop"
	TypeMonitor = "Monitor"
	TypePrinter = "Printer"
	TypeScanner = "Scanner"
	TypeMFP     = "MFP"
	TypeServer  = "Server"
	TypeNetwork = "Network"
	TypeOther   = "Other"
)

// Equipment statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusRepair   = "repair"
	StatusDisposed = "disposed"
)

// Option is a code with its display label.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// EquipmentTypes returns the equipment types in display order.
func EquipmentTypes() []Option {
	codes := []string{TypePC, TypeLaptop, TypeMonitor, TypePrinter, TypeScanner, TypeMFP, TypeServer, TypeNetwork, TypeOther}
	out := make([]Option, len(codes))
	for i, c := range codes {
		out[i] = Option{Code: c, Label: TypeLabel(c)}
	}
	return out
}

// EquipmentStatuses returns the equipment statuses in display order.
func EquipmentStatuses() []Option {
	codes := []string{StatusActive, StatusInactive, StatusRepair, StatusDisposed}
	out := make([]Option, len(codes))
	for i, c := range codes {
		out[i] = Option{Code: c, Label: StatusLabel(c)}
	}
	return out
}

// TypeLabel returns the display label of an equipment type, or the code itself when unknown.
func TypeLabel(code string) string {
	switch code {
	case TypePC:
		return "Computer"
	case TypeLaptop:
		return "Laptop"
	case TypeMonitor:
		return "Monitor"
	case TypePrinter:
		return "Printer"
	case TypeScanner:
		return "Scanner"
	case TypeMFP:
		return "Multifunction printer"
	case TypeServer:
		return "Server"
	case TypeNetwork:
		return "Network equipment"
	case TypeOther:
		return "Other"
	default:
		return code
	}
}

// StatusLabel returns the display label of an equipment status, or the code itself when unknown.
func StatusLabel(code string) string {
	switch code {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusRepair:
		return "In repair"
	case StatusDisposed:
		return "Disposed"
	default:
		return code
	}
}

// AuditStatusLabel returns the display label of an audit status.
func AuditStatusLabel(code string) string {
	switch code {
	case AuditInProgress:
		return "In progress"
	case AuditCompleted:
		return "Completed"
	default:
		return code
	}
}

// IsValidType reports whether code is a known equipment type.
func IsValidType(code string) bool {
	switch code {
	case TypePC, TypeLaptop, TypeMonitor, TypePrinter, TypeScanner, TypeMFP, TypeServer, TypeNetwork, TypeOther:
		return true
	}
	return false
}

// IsValidStatus reports whether code is a known equipment status.
func IsValidStatus(code string) bool {
	switch code {
	case StatusActive, StatusInactive, StatusRepair, StatusDisposed:
		return true
	}
	return false
}
