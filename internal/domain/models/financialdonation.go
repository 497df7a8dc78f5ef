package models

import (
	"time"
)

// FinancialDonation records a monetary pledge. No payment is processed; the
// donor receives the AccountInfo snapshot taken when the pledge was made.
//
// Amount is expressed in centavos.
type FinancialDonation struct {
	ID            int64           `bson:"_id" json:"id"`
	CampaignID    int64           `bson:"campaign_id" json:"campaignId"`
	DonorName     string          `bson:"donor_name" json:"donorName"`
	DonorEmail    string          `bson:"donor_email" json:"donorEmail"`
	DonorPhone    string          `bson:"donor_phone" json:"donorPhone"`
	Amount        int64           `bson:"amount" json:"amount"`
	PaymentMethod PaymentMethod   `bson:"payment_method" json:"paymentMethod"`
	AccountInfo   AccountInfo     `bson:"account_info" json:"accountInfo"`
	Message       string          `bson:"message,omitempty" json:"message,omitempty"`
	Status        FinancialStatus `bson:"status" json:"status"`
	CreatedAt     time.Time       `bson:"created_at" json:"createdAt"`
}

// AccountInfo are the payment instructions shown to a financial donor.
type AccountInfo struct {
	BankName    string `bson:"bank_name" json:"bankName" yaml:"bank_name"`
	Agency      string `bson:"agency" json:"agency" yaml:"agency"`
	Account     string `bson:"account" json:"account" yaml:"account"`
	PixKey      string `bson:"pix_key" json:"pixKey" yaml:"pix_key"`
	Beneficiary string `bson:"beneficiary" json:"beneficiary" yaml:"beneficiary"`
}

// IsZero reports whether no instruction field is filled in.
func (a AccountInfo) IsZero() bool {
	return a == AccountInfo{}
}

// PaymentMethod is how a financial donor intends to pay.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentCard     PaymentMethod = "cartao"
	PaymentTransfer PaymentMethod = "deposito"
)

// ParsePaymentMethod returns the method for s, or false if s is not one of
// the three accepted literals.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch m := PaymentMethod(s); m {
	case PaymentPix, PaymentCard, PaymentTransfer:
		return m, true
	}
	return "", false
}
