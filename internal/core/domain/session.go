package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle state of a cash register session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// CashSession is a bounded period during which point-of-sale operations are
// recorded against one open register. At most one session may be OPEN
// system-wide. A session is mutated only once, at close, and is immutable
// afterwards.
type CashSession struct {
	SessionID string        `json:"sessionID"`
	Status    SessionStatus `json:"status"`
	OpenedBy  string        `json:"openedBy"`
	OpeningDate time.Time   `json:"openingDate"`
	// OpeningAmount is the amount declared by the operator at open. It is not
	// forced to equal the previous session's closing balance.
	OpeningAmount decimal.Decimal `json:"openingAmount"`
	// OpeningVariance is OpeningAmount minus the previous session's global
	// closing balance, recorded for audit. Zero for the first session.
	OpeningVariance decimal.Decimal `json:"openingVariance"`

	ClosedBy             *string          `json:"closedBy,omitempty"`
	ClosingDate          *time.Time       `json:"closingDate,omitempty"`
	ClosingBalanceGlobal *decimal.Decimal `json:"closingBalanceGlobal,omitempty"`
	AuditFields
}

// VaultReconciliation is the per-vault audit snapshot taken at session close:
// the system-derived balance, the physically counted balance, and their
// variance. For cash vaults the count is backed by a billetage.
type VaultReconciliation struct {
	SessionID     string          `json:"sessionID"`
	VaultID       string          `json:"vaultID"`
	VaultName     string          `json:"vaultName"`
	SystemBalance decimal.Decimal `json:"systemBalance"`
	RealBalance   decimal.Decimal `json:"realBalance"`
	Variance      decimal.Decimal `json:"variance"`
	Billetage     Billetage       `json:"billetage,omitempty"`
}

// HasVariance reports whether the counted balance diverged from the system
// balance. A variance is a recorded warning, never a blocker.
func (r VaultReconciliation) HasVariance() bool {
	return !r.Variance.IsZero()
}
