package db_models

// CreditAccount is created lazily with the starting grant on first balance check.
type CreditAccount struct {
	BaseModel
	OwnerID string `gorm:"size:64;uniqueIndex;not null"`
	Credits int    `gorm:"not null;default:0;check:chk_credit_accounts_non_negative,credits >= 0"`
}

type CreditReason string

const (
	CreditReasonGrant     CreditReason = "starting_grant"
	CreditReasonPlanDebit CreditReason = "plan_generation"
	CreditReasonRefund    CreditReason = "plan_refund"
	CreditReasonTopUp     CreditReason = "top_up"
)

// CreditTransaction is one journal row per balance change.
type CreditTransaction struct {
	BaseModel
	OwnerID      string       `gorm:"size:64;index;not null"`
	Delta        int          `gorm:"not null"`
	Reason       CreditReason `gorm:"size:32;not null"`
	BalanceAfter int          `gorm:"not null"`
}
