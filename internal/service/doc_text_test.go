package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ower-data/internal/domain"
)

func TestDebtNoticeText(t *testing.T) {
	land := 340.0
	mpz := 12.5
	d := &domain.Debtor{
		Name:     "Петренко Петро",
		LandDebt: &land,
		MPZ:      &mpz,
	}
	req := &domain.Requisite{
		OrgName:        "Міська рада",
		Account:        "UA12345",
		BankName:       "Держбанк",
		EDRPOU:         "12345678",
		PaymentPurpose: "Погашення боргу",
	}

	text := debtNoticeText(d, req)

	assert.Contains(t, text, "Total debt: 352.50 UAH")
	assert.Contains(t, text, "land 340.00")
	assert.Contains(t, text, "mpz 12.50")
	// zero components stay out of the breakdown
	assert.NotContains(t, text, "residential 0")
	assert.Contains(t, text, "UA12345")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", formatDate(nil))

	d := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "01.03.2024", formatDate(&d))
}

func TestKindergartenNoticeText(t *testing.T) {
	amount := 150.0
	d := &domain.KindergartenDebt{
		ChildName:  "Марія Коваль",
		ParentName: "Коваль Олена",
		DebtAmount: &amount,
	}
	req := &domain.Requisite{OrgName: "Міська рада", Account: "UA12345"}

	text := kindergartenNoticeText(d, req)

	assert.Contains(t, text, "150.00 UAH")
	assert.Contains(t, text, "Марія Коваль")
	assert.Contains(t, text, "Коваль Олена")
}
