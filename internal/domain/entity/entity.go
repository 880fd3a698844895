package entity

// Identifiable lo implementa todo recurso con id numérico del backend.
type Identifiable interface {
	EntityID() int64
}

// AddByID agrega un elemento a un conjunto keyed por id. Es idempotente:
// si ya existe un elemento con el mismo id, devuelve el conjunto sin cambios.
func AddByID[T Identifiable](set []T, item T) []T {
	if ContainsID(set, item.EntityID()) {
		return set
	}
	return append(set, item)
}

// RemoveByID elimina el elemento con ese id. Es un no-op si el id no está presente.
func RemoveByID[T Identifiable](set []T, id int64) []T {
	for i, it := range set {
		if it.EntityID() == id {
			out := make([]T, 0, len(set)-1)
			out = append(out, set[:i]...)
			return append(out, set[i+1:]...)
		}
	}
	return set
}

// ContainsID reporta si el conjunto contiene un elemento con ese id.
func ContainsID[T Identifiable](set []T, id int64) bool {
	for _, it := range set {
		if it.EntityID() == id {
			return true
		}
	}
	return false
}
