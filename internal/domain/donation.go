package domain

// Identification payer tax document (CPF/CNPJ)
type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// Payer identifies who is donating
type Payer struct {
	Email          string         `json:"email"`
	Identification Identification `json:"identification"`
}

// DonationRequest is the body of POST /donations. The same endpoint doubles
// as the public-key broker when Action is "get-public-key".
type DonationRequest struct {
	Action            string  `json:"action,omitempty"`
	Token             string  `json:"token"`
	TransactionAmount float64 `json:"transactionAmount"`
	Installments      int     `json:"installments"`
	PaymentMethodID   string  `json:"paymentMethodId"`
	IssuerID          string  `json:"issuerId,omitempty"`
	Payer             Payer   `json:"payer"`
}

// ActionGetPublicKey selects the public-key broker path of the donation endpoint
const ActionGetPublicKey = "get-public-key"

// DonationResult is the normalized outcome of a card charge. Payment attempts
// are never persisted; the provider is the system of record.
type DonationResult struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"statusDetail"`
	TransactionAmount float64 `json:"transactionAmount"`
	Installments      int     `json:"installments"`
}

// PublicKeyResponse body of the public-key broker path
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}
