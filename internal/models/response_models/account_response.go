package response_models

type AccountLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreditBalanceResponse struct {
	Credits     int `json:"credits"`
	CostPerPlan int `json:"cost_per_plan"`
}

type CreditTransactionResponse struct {
	Delta        int    `json:"delta"`
	Reason       string `json:"reason"`
	BalanceAfter int    `json:"balance_after"`
	CreatedAt    int64  `json:"created_at"`
}
