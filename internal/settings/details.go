package settings

import (
	"github.com/google/uuid"

	"github.com/printdesk/printdesk/internal/models"
)

// Payment-method list edits are expressed as immutable updates: each helper
// returns a new InvoiceSettings with a fresh slice, leaving the input intact.
// Entries get a generated id when they arrive without one; insertion order is
// display order.

func AddBankDetail(s models.InvoiceSettings, d models.BankDetail) models.InvoiceSettings {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	out := s
	out.BankDetails = append(append([]models.BankDetail{}, s.BankDetails...), d)
	return out
}

func RemoveBankDetail(s models.InvoiceSettings, id string) models.InvoiceSettings {
	out := s
	out.BankDetails = make([]models.BankDetail, 0, len(s.BankDetails))
	for _, d := range s.BankDetails {
		if d.ID != id {
			out.BankDetails = append(out.BankDetails, d)
		}
	}
	return out
}

func AddMobileMoneyDetail(s models.InvoiceSettings, d models.MobileMoneyDetail) models.InvoiceSettings {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	out := s
	out.MobileMoneyDetails = append(append([]models.MobileMoneyDetail{}, s.MobileMoneyDetails...), d)
	return out
}

func RemoveMobileMoneyDetail(s models.InvoiceSettings, id string) models.InvoiceSettings {
	out := s
	out.MobileMoneyDetails = make([]models.MobileMoneyDetail, 0, len(s.MobileMoneyDetails))
	for _, d := range s.MobileMoneyDetails {
		if d.ID != id {
			out.MobileMoneyDetails = append(out.MobileMoneyDetails, d)
		}
	}
	return out
}
