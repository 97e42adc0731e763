package models

import (
	"encoding/json"
	"time"
)

type LogoSize string

const (
	LogoSmall  LogoSize = "small"
	LogoMedium LogoSize = "medium"
	LogoLarge  LogoSize = "large"
)

type ItemDisplayFormat string

const (
	ItemDisplayCombined ItemDisplayFormat = "combined"
	ItemDisplaySeparate ItemDisplayFormat = "separate"
)

// BankDetail is one bank-transfer payment option shown on the invoice.
type BankDetail struct {
	ID            string `json:"id"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// MobileMoneyDetail is one mobile-money payment option shown on the invoice.
type MobileMoneyDetail struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	ContactName string `json:"contactName"`
	PhoneNumber string `json:"phoneNumber"`
}

// InvoiceSettings is the configurable document-appearance and business-detail
// record used to render an invoice. Empty strings are valid everywhere and
// simply render as blank; rate values are ignored when their include flag is
// off.
type InvoiceSettings struct {
	CompanyName    string `json:"companyName"`
	CompanyLogo    string `json:"companyLogo"` // opaque URL, may be empty
	CompanyAddress string `json:"companyAddress"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyPhone   string `json:"companyPhone"`
	TINNumber      string `json:"tinNumber"`

	ShowHeader bool `json:"showHeader"`
	ShowFooter bool `json:"showFooter"`
	ShowLogo   bool `json:"showLogo"`

	LogoSize       LogoSize `json:"logoSize"`
	LogoZoom       float64  `json:"logoZoom"`
	LogoShowBorder bool     `json:"logoShowBorder"`
	LogoPanX       float64  `json:"logoPanX"` // reserved, not consumed by the renderer
	LogoPanY       float64  `json:"logoPanY"` // reserved, not consumed by the renderer

	ShowItemCategory  bool              `json:"showItemCategory"`
	ShowItemName      bool              `json:"showItemName"`
	ShowItemSize      bool              `json:"showItemSize"`
	ItemDisplayFormat ItemDisplayFormat `json:"itemDisplayFormat"`

	IncludeTax      bool    `json:"includeTax"`
	TaxRate         float64 `json:"taxRate"` // percent, 0..100
	IncludeDiscount bool    `json:"includeDiscount"`
	DiscountRate    float64 `json:"discountRate"` // percent, 0..100

	Notes        string `json:"notes"`
	CustomFooter string `json:"customFooter"`

	BankDetails        []BankDetail        `json:"bankDetails"`
	MobileMoneyDetails []MobileMoneyDetail `json:"mobileMoneyDetails"`
}

// DefaultInvoiceSettings returns the empty template used when a user has no
// stored settings yet. Content fields are blank; only the structural defaults
// are set (medium logo at 1.0 zoom, no border, combined item display).
func DefaultInvoiceSettings() InvoiceSettings {
	return InvoiceSettings{
		ShowHeader:        true,
		ShowFooter:        true,
		ShowLogo:          true,
		LogoSize:          LogoMedium,
		LogoZoom:          1.0,
		LogoShowBorder:    false,
		ShowItemName:      true,
		ItemDisplayFormat: ItemDisplayCombined,
	}
}

// InvoiceSettingRecord is the persisted form of InvoiceSettings: a named JSON
// snapshot owned by one user. At most one record per user carries IsDefault.
type InvoiceSettingRecord struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_setting_user_name,priority:1" json:"user_id"`
	Name      string `gorm:"not null;uniqueIndex:idx_setting_user_name,priority:2" json:"name"`
	IsDefault bool   `gorm:"not null;default:false;index" json:"is_default"`
	Data      string `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings decodes the stored snapshot.
func (r *InvoiceSettingRecord) Settings() (InvoiceSettings, error) {
	var s InvoiceSettings
	if err := json.Unmarshal([]byte(r.Data), &s); err != nil {
		return InvoiceSettings{}, err
	}
	return s, nil
}

// SetSettings encodes the snapshot into the record.
func (r *InvoiceSettingRecord) SetSettings(s InvoiceSettings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.Data = string(b)
	return nil
}
