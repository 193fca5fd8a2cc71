package service

import (
	"fmt"
	"strings"
	"time"

	"ower-data/internal/domain"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02.01.2006")
}

func debtValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// debtNoticeText builds the human-readable debt summary merged into
// generated and printed documents.
func debtNoticeText(d *domain.Debtor, req *domain.Requisite) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total debt: %.2f UAH", d.TotalDebt())

	parts := []struct {
		label string
		value *float64
	}{
		{"non-residential", d.NonResidentialDebt},
		{"residential", d.ResidentialDebt},
		{"land", d.LandDebt},
		{"orenda", d.OrendaDebt},
		{"mpz", d.MPZ},
	}
	details := []string{}
	for _, p := range parts {
		if debtValue(p.value) != 0 {
			details = append(details, fmt.Sprintf("%s %.2f", p.label, debtValue(p.value)))
		}
	}
	if len(details) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(details, ", "))
	}

	fmt.Fprintf(&sb, ". Payable to %s, account %s, %s, EDRPOU %s. Purpose: %s.",
		req.OrgName, req.Account, req.BankName, req.EDRPOU, req.PaymentPurpose)
	return sb.String()
}

// kindergartenNoticeText is the kindergarten-fee variant of the summary.
func kindergartenNoticeText(d *domain.KindergartenDebt, req *domain.Requisite) string {
	return fmt.Sprintf("Kindergarten fee debt: %.2f UAH for %s (parent: %s). Payable to %s, account %s, %s, EDRPOU %s. Purpose: %s.",
		debtValue(d.DebtAmount), d.ChildName, d.ParentName,
		req.OrgName, req.Account, req.BankName, req.EDRPOU, req.PaymentPurpose)
}
