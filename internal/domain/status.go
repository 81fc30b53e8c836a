package domain

// ProjectStatus represents a premium project's lifecycle state
type ProjectStatus string

const (
	StatusElaborado           ProjectStatus = "elaborado"
	StatusEmNegociacao        ProjectStatus = "em_negociacao"
	StatusPerdido             ProjectStatus = "perdido"
	StatusAguardandoPagamento ProjectStatus = "aguardando_pagamento"
	StatusAtivo               ProjectStatus = "ativo"
	StatusInadimplente        ProjectStatus = "inadimplente"
	StatusCancelado           ProjectStatus = "cancelado"
	StatusConcluido           ProjectStatus = "concluido"
)

// StatusOrder lists the statuses in lifecycle order for rollups and
// status pickers.
var StatusOrder = []ProjectStatus{
	StatusElaborado,
	StatusEmNegociacao,
	StatusAguardandoPagamento,
	StatusAtivo,
	StatusInadimplente,
	StatusConcluido,
	StatusCancelado,
	StatusPerdido,
}

// Transitions maps each status to the statuses directly reachable from it.
// Terminal statuses (perdido, cancelado, concluido) map to an empty set.
// The only cycle in the graph is ativo <-> inadimplente.
var Transitions = map[ProjectStatus][]ProjectStatus{
	StatusElaborado:           {StatusEmNegociacao, StatusPerdido},
	StatusEmNegociacao:        {StatusAguardandoPagamento, StatusPerdido},
	StatusAguardandoPagamento: {StatusAtivo, StatusInadimplente},
	StatusAtivo:               {StatusConcluido, StatusCancelado, StatusInadimplente},
	StatusInadimplente:        {StatusAtivo, StatusCancelado},
	StatusPerdido:             {},
	StatusCancelado:           {},
	StatusConcluido:           {},
}

// RequiredContextFields maps a target status to the context keys that a
// transition into it must carry. Statuses absent from the map require
// no context at all (only the initial status qualifies).
var RequiredContextFields = map[ProjectStatus][]string{
	StatusEmNegociacao:        {"negotiation_start"},
	StatusPerdido:             {"loss_reason"},
	StatusAguardandoPagamento: {"payment_due_date"},
	StatusAtivo:               {"start_date"},
	StatusInadimplente:        {"overdue_days"},
	StatusCancelado:           {"cancellation_reason"},
	StatusConcluido:           {"completion_date"},
}

// LossReasons is the accepted value set for the loss_reason context key.
// When the reason is "other", callers may supply loss_reason_details as
// free text; it is not enforced as required.
var LossReasons = map[string]bool{
	"price":      true,
	"timeline":   true,
	"competitor": true,
	"budget":     true,
	"scope":      true,
	"other":      true,
}

// StatusConfig holds the presentation attributes the portal UI renders
// for a status badge.
type StatusConfig struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// StatusConfigs maps every status to its badge configuration.
var StatusConfigs = map[ProjectStatus]StatusConfig{
	StatusElaborado:           {Label: "Elaborado", Color: "gray", Icon: "file-text"},
	StatusEmNegociacao:        {Label: "Em Negociação", Color: "blue", Icon: "handshake"},
	StatusPerdido:             {Label: "Perdido", Color: "red", Icon: "x-circle"},
	StatusAguardandoPagamento: {Label: "Aguardando Pagamento", Color: "yellow", Icon: "clock"},
	StatusAtivo:               {Label: "Ativo", Color: "green", Icon: "play-circle"},
	StatusInadimplente:        {Label: "Inadimplente", Color: "orange", Icon: "alert-triangle"},
	StatusCancelado:           {Label: "Cancelado", Color: "red", Icon: "slash"},
	StatusConcluido:           {Label: "Concluído", Color: "emerald", Icon: "check-circle"},
}

// IsValid reports whether s is one of the eight defined statuses
func (s ProjectStatus) IsValid() bool {
	_, ok := Transitions[s]
	return ok
}

// IsTerminal reports whether s admits no outgoing transitions
func (s ProjectStatus) IsTerminal() bool {
	next, ok := Transitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether to is directly reachable from from
func CanTransition(from, to ProjectStatus) bool {
	for _, next := range Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the statuses reachable from the
// given status. Callers may mutate the returned slice freely.
func AllowedTransitions(from ProjectStatus) []ProjectStatus {
	next, ok := Transitions[from]
	if !ok {
		return []ProjectStatus{}
	}
	out := make([]ProjectStatus, len(next))
	copy(out, next)
	return out
}

// MissingContextFields returns the required context keys for the target
// status that are absent or empty in the supplied context, in the order
// the requirement table declares them.
func MissingContextFields(target ProjectStatus, context map[string]string) []string {
	missing := []string{}
	for _, field := range RequiredContextFields[target] {
		if context[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
