package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-client/internal/application/controller"
	"github.com/jhoicas/inventario-client/internal/application/ports"
	"github.com/jhoicas/inventario-client/internal/domain"
	"github.com/jhoicas/inventario-client/internal/domain/entity"
)

// submitForm envía un formulario y, ante errores de validación, pinta el
// mapeo campo -> mensaje (el formulario queda abierto con su borrador, pero
// en un proceso de un solo comando eso se traduce en reintentar el comando).
func submitForm[D any](cmd *cobra.Command, form *controller.FormController[D]) error {
	if err := form.Submit(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			printFieldErrors(cmd, form.Errors())
		}
		return err
	}
	return nil
}

// confirmDelete pide confirmación interactiva antes de un borrado,
// salvo que el comando venga con --yes.
func confirmDelete(cmd *cobra.Command, yes bool, what string) bool {
	if yes {
		return true
	}
	cmd.Printf("¿Eliminar %s? (s/N): ", what)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí":
		return true
	}
	cmd.Println("Operación cancelada")
	return false
}

// activeLabel estado legible de un recurso activable.
func activeLabel(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}

// runList flujo común de los comandos de listado: cargar la página pedida,
// validar el rango contra totalPages, aplicar la búsqueda local y pintar.
// El controlador no recorta páginas fuera de rango; ese control vive aquí,
// en el llamador.
func runList[T entity.Identifiable](
	ctx context.Context,
	cmd *cobra.Command,
	deps *Deps,
	desc controller.ListDescriptor[T],
	gateway ports.EntityGateway[T],
	page int,
	search string,
	render func(*cobra.Command, T),
) error {
	list := controller.NewListController(desc, gateway, deps.Config.API.PageSize, deps.Log)
	list.Load(ctx, 1)

	if page > 1 {
		if page > list.TotalPages() {
			return fmt.Errorf("página %d de %d: %w", page, list.TotalPages(), domain.ErrPageOutOfRange)
		}
		list.ChangePage(ctx, page)
	}
	if list.Degraded() {
		deps.Notify.Warning("Sin conexión", "Mostrando datos de demostración")
	}
	list.SetSearchTerm(search)

	for _, item := range list.Visible() {
		render(cmd, item)
	}
	cmd.Printf("página %d de %d\n", list.CurrentPage(), list.TotalPages())
	return nil
}
