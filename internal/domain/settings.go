package domain

// Requisite is the singleton organizational-metadata row merged into
// generated documents (ower.settings for the debtor module,
// ower.kindergarten_settings for the kindergarten module).
type Requisite struct {
	ID             int64  `json:"id"`
	OrgName        string `json:"org_name"`
	EDRPOU         string `json:"edrpou"`
	Account        string `json:"account"`
	BankName       string `json:"bank_name"`
	PaymentPurpose string `json:"payment_purpose"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
}
