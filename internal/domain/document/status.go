package document

import (
	"strings"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

var statusRank = map[entity.DocumentStatus]int{
	entity.StatusDraft:     0,
	entity.StatusInProcess: 1,
	entity.StatusFinalized: 2,
}

// ParseStatus normaliza un estado recibido por la API. Acepta los nombres canónicos
// y las etiquetas históricas de pedidos (Pendiente, En Proceso, Completado).
func ParseStatus(s string) (entity.DocumentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft", "pendiente":
		return entity.StatusDraft, nil
	case "in_process", "en proceso", "en_proceso":
		return entity.StatusInProcess, nil
	case "finalized", "completado":
		return entity.StatusFinalized, nil
	}
	return "", domain.ErrInvalidInput
}

// Transition resultado de evaluar un cambio de estado.
type Transition struct {
	From      entity.DocumentStatus
	To        entity.DocumentStatus
	Changed   bool // false: mismo estado, no hay nada que persistir
	Finalizes bool // true solo al entrar a FINALIZED; dispara el ajuste de stock
}

// Evaluate aplica la máquina de estados. Solo se permite avanzar; pedir el estado actual
// es un no-op (Changed=false) y retroceder devuelve InvalidTransitionError.
func Evaluate(from, to entity.DocumentStatus) (Transition, error) {
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	if !okFrom || !okTo {
		return Transition{}, &domain.InvalidTransitionError{From: string(from), To: string(to)}
	}
	t := Transition{From: from, To: to}
	switch {
	case toRank == fromRank:
		return t, nil
	case toRank < fromRank:
		return Transition{}, &domain.InvalidTransitionError{From: string(from), To: string(to)}
	}
	t.Changed = true
	t.Finalizes = to == entity.StatusFinalized
	return t, nil
}
