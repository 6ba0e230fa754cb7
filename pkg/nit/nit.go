// Package nit calcula y valida el dígito de verificación del NIT colombiano
// (módulo 11 con los pesos de la Orden Administrativa 4 de 1989, DIAN).
package nit

import (
	"fmt"
	"unicode"
)

// pesos para los 9 dígitos base, de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// CheckDigit calcula el dígito de verificación de los 9 primeros dígitos del NIT.
func CheckDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) < 9 {
		return 0, fmt.Errorf("nit: se requieren 9 dígitos base, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r), nil
	}
	return byte('0' + (11 - r)), nil
}

// Validate verifica un NIT completo ("900123456-8", "900.123.456-8" o "9001234568").
func Validate(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("nit: se esperaban 10 dígitos (base + verificación), se recibieron %d", len(digits))
	}
	want, err := CheckDigit(string(digits[:9]))
	if err != nil {
		return err
	}
	if digits[9] != want {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %c, recibido %c", want, digits[9])
	}
	return nil
}

// Format devuelve "<base>-<dv>". Con 9 dígitos calcula el dígito; con 10 lo valida.
func Format(taxID string) (string, error) {
	digits := extractDigits(taxID)
	switch len(digits) {
	case 9:
		dv, err := CheckDigit(string(digits))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%c", digits, dv), nil
	case 10:
		if err := Validate(string(digits)); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%c", digits[:9], digits[9]), nil
	default:
		return "", fmt.Errorf("nit: longitud inválida (%d dígitos)", len(digits))
	}
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
