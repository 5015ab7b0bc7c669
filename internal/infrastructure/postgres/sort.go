package postgres

import "strings"

// Whitelists de columnas ordenables. El nombre de columna viaja interpolado
// en el ORDER BY, así que todo lo que no esté aquí cae al valor por defecto.

var customerSortFields = map[string]bool{
	"id":         true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"company":    true,
	"created_at": true,
	"updated_at": true,
}

var invoiceSortFields = map[string]bool{
	"amount":  true,
	"sent_at": true,
}

// sortField valida la columna contra la whitelist; defaultField si no aplica.
func sortField(field string, allowed map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(field)
	if trimmed != "" && allowed[trimmed] {
		return trimmed
	}
	return defaultField
}

// sortDir normaliza la dirección a ASC o DESC; defaultDir si no aplica.
func sortDir(dir, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultDir
}
