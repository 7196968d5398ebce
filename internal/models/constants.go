package models

import "strings"

// Status is a record status in its canonical form.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusInReview Status = "IN_REVIEW"
	StatusResolved Status = "RESOLVED"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// statusAliases maps the Portuguese values the back office writes.
var statusAliases = map[string]Status{
	"ABERTO":     StatusOpen,
	"EM_ANALISE": StatusInReview,
	"EM ANALISE": StatusInReview,
	"RESOLVIDO":  StatusResolved,
	"PENDENTE":   StatusPending,
	"APROVADO":   StatusApproved,
	"REPROVADO":  StatusRejected,
}

// NormalizeStatus maps a remote status to its canonical value. An empty status
// becomes fallback; an unknown one is kept upper-cased.
func NormalizeStatus(raw string, fallback Status) Status {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return fallback
	}
	if canonical, ok := statusAliases[s]; ok {
		return canonical
	}
	return Status(s)
}

// Badge is the visual variant a status is rendered with.
type Badge string

const (
	BadgeDefault     Badge = "default"
	BadgeSecondary   Badge = "secondary"
	BadgeDestructive Badge = "destructive"
	BadgeOutline     Badge = "outline"
)

// DamageBadge: resolved is default, in review secondary, anything else destructive.
func DamageBadge(s Status) Badge {
	switch s {
	case StatusResolved:
		return BadgeDefault
	case StatusInReview:
		return BadgeSecondary
	default:
		return BadgeDestructive
	}
}

// OrderBadge: pending is secondary, approved default, rejected destructive.
func OrderBadge(s Status) Badge {
	switch s {
	case StatusPending:
		return BadgeSecondary
	case StatusApproved:
		return BadgeDefault
	case StatusRejected:
		return BadgeDestructive
	default:
		return BadgeOutline
	}
}

// MaintenanceBadge depends only on whether a mechanic answered.
func MaintenanceBadge(hasResponse bool) Badge {
	if hasResponse {
		return BadgeDefault
	}
	return BadgeSecondary
}

// Order request types.
const (
	OrderTypeDayOff   = "Folga"
	OrderTypeVacation = "Ferias"
	OrderTypeTool     = "Ferramenta"
	OrderTypeOther    = "Outros"
)

// OrderTypes lists the request types in picker order.
var OrderTypes = []string{OrderTypeDayOff, OrderTypeVacation, OrderTypeTool, OrderTypeOther}
