package cli

import (
	"fmt"
	"io"

	"github.com/jhoicas/inventario-client/internal/application/notify"
)

// ToastPrinter pinta cada notificación encolada en el momento en que llega.
// Es la presentación de la cola de toasts en un terminal: una línea por
// notificación, con su clase como prefijo.
func ToastPrinter(out io.Writer) func(notify.Toast) {
	return func(t notify.Toast) {
		prefix := toastPrefix(t.Kind)
		if t.Message == "" {
			fmt.Fprintf(out, "%s %s\n", prefix, t.Title)
			return
		}
		fmt.Fprintf(out, "%s %s: %s\n", prefix, t.Title, t.Message)
	}
}

func toastPrefix(k notify.Kind) string {
	switch k {
	case notify.KindSuccess:
		return "✔"
	case notify.KindError:
		return "✖"
	case notify.KindWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}
