package domain

import "time"

// PhoneStatus is the tri-state contact flag derived from the phone table:
// checked and has a number, checked without a number, or never checked.
const (
	PhoneStatusHasPhone   = "has_phone"
	PhoneStatusNoPhone    = "no_phone"
	PhoneStatusNotChecked = "not_checked"
)

// Debtor is a row of ower.ower: one person/household with up to five
// outstanding debt balances. Identification is stored masked, which is why
// phone matching uses only its trailing digits.
type Debtor struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Identification     string     `json:"identification"`
	Date               *time.Time `json:"date,omitempty"`
	NonResidentialDebt *float64   `json:"non_residential_debt"`
	ResidentialDebt    *float64   `json:"residential_debt"`
	LandDebt           *float64   `json:"land_debt"`
	OrendaDebt         *float64   `json:"orenda_debt"`
	MPZ                *float64   `json:"mpz"`
}

// TotalDebt is the null-safe sum of the five component debts. The listing
// query computes the same expression in SQL; this is for single-row reads.
func (d *Debtor) TotalDebt() float64 {
	total := 0.0
	for _, v := range []*float64{d.NonResidentialDebt, d.ResidentialDebt, d.LandDebt, d.OrendaDebt, d.MPZ} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// DebtorListItem is one element of the filtered debtor listing: the debtor
// plus fields computed by the query (total_debt, phone_status).
type DebtorListItem struct {
	Debtor
	TotalDebt   float64 `json:"total_debt"`
	PhoneStatus string  `json:"phone_status"`
	IsChecked   bool    `json:"ischecked"`
	HasNumber   bool    `json:"hasnumber"`
}

// RegistryPerson is a cross-reference hit from the remote identification
// registry: the same person with the full (unmasked) tax identifier.
type RegistryPerson struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Identification string `json:"identification"`
}

// HistoryRecord is a row of ower.ower_history: an immutable snapshot of a
// debtor's identifying data. Call-log entries anchor to these, and "latest"
// is always selected by registry_date descending.
type HistoryRecord struct {
	ID             int64     `json:"id"`
	PersonName     string    `json:"person_name"`
	Identification string    `json:"identification"`
	RegistryDate   time.Time `json:"registry_date"`
}

// DebtorCall is a row of ower.debtor_calls. Append-only: the service exposes
// no update or delete for calls.
type DebtorCall struct {
	ID              int64     `json:"id"`
	HistoryRecordID int64     `json:"history_record_id"`
	CallDate        time.Time `json:"call_date"`
	CallTopic       string    `json:"call_topic"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
