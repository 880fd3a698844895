package controller

import (
	"regexp"
	"strings"
)

// emailRe forma estándar local@dominio.tld.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reporta si el correo tiene forma válida.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// passwordSymbols conjunto fijo de símbolos admitidos en la política de
// contraseñas.
const passwordSymbols = "@$!%*?&.#_-"

// ValidPassword aplica la política de contraseñas: longitud 8–35 con al menos
// una minúscula, una mayúscula, un dígito y un símbolo del conjunto admitido.
// (RE2 no soporta lookahead, así que las clases se comprueban por separado.)
func ValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 35 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// required reporta si un campo de texto quedó en blanco tras recortar
// espacios.
func required(s string) bool {
	return strings.TrimSpace(s) != ""
}
