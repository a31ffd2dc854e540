package request_models

// CreditTopUpRequest is an operator grant; the journal records it as a top-up.
type CreditTopUpRequest struct {
	OwnerID string `json:"owner_id" binding:"required,uuid"`
	Amount  int    `json:"amount" binding:"required,min=1,max=100000"`
}
