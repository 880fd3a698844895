package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-client/internal/application/controller"
)

// ──────────────────────────────────────────────────────────────────────────────
// Política de contraseñas: 8–35 caracteres con minúscula, mayúscula, dígito
// y un símbolo del conjunto admitido.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidPassword_Aceptadas(t *testing.T) {
	casos := []string{
		"Abcdef1#",      // mínimo exacto: 8 caracteres, una de cada clase
		"Admin123#",     // la credencial de los datos de arranque
		"xY9@xY9@xY9@x", // símbolos repetidos del conjunto
		"Contrasena1_",  // guion bajo también es símbolo admitido
	}
	for _, pass := range casos {
		assert.True(t, controller.ValidPassword(pass), "debería aceptar %q", pass)
	}
}

func TestValidPassword_Rechazadas(t *testing.T) {
	casos := map[string]string{
		"Abcde1#":     "7 caracteres: por debajo del mínimo",
		"abcdefghij":  "solo minúsculas",
		"ABCDEFGH1#":  "sin minúscula",
		"abcdefgh1#":  "sin mayúscula",
		"Abcdefgh#":   "sin dígito",
		"Abcdefgh1":   "sin símbolo",
		"Abcdef1^":    "símbolo fuera del conjunto admitido",
		"":            "vacía",
	}
	for pass, motivo := range casos {
		assert.False(t, controller.ValidPassword(pass), "debería rechazar %q (%s)", pass, motivo)
	}
}

func TestValidPassword_LongitudMaxima(t *testing.T) {
	base := "Aa1#"
	larga := base
	for len(larga) <= 35 {
		larga += "x"
	}
	assert.False(t, controller.ValidPassword(larga), "más de 35 caracteres se rechaza")
	assert.True(t, controller.ValidPassword(larga[:35]), "35 exactos se acepta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Formato de correo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidEmail(t *testing.T) {
	assert.True(t, controller.ValidEmail("juan@email.com"))
	assert.True(t, controller.ValidEmail("a.b+c@sub.dominio.co"))

	assert.False(t, controller.ValidEmail("sin-arroba.com"))
	assert.False(t, controller.ValidEmail("con espacios@email.com"))
	assert.False(t, controller.ValidEmail("sin-tld@dominio"))
	assert.False(t, controller.ValidEmail(""))
}
