package cartera

import (
	"fmt"
	"time"
)

var mesesES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// LongDateES fecha larga en español: "05 de marzo de 2024".
func LongDateES(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), mesesES[t.Month()-1], t.Year())
}

// ShortDate fecha corta ISO (YYYY-MM-DD).
func ShortDate(t time.Time) string {
	return t.Format("2006-01-02")
}
