package models

// DonationStatus is the lifecycle state of an item Donation.
//
//	pending → confirmed → scheduled → collected
//	pending → cancelled
//
// collected and cancelled are terminal.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationConfirmed DonationStatus = "confirmed"
	DonationScheduled DonationStatus = "scheduled"
	DonationCollected DonationStatus = "collected"
	DonationCancelled DonationStatus = "cancelled"
)

var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:   {DonationConfirmed, DonationCancelled},
	DonationConfirmed: {DonationScheduled},
	DonationScheduled: {DonationCollected},
}

// ParseDonationStatus returns the status named by s, or false when s is not a
// donation status.
func ParseDonationStatus(s string) (DonationStatus, bool) {
	switch st := DonationStatus(s); st {
	case DonationPending, DonationConfirmed, DonationScheduled, DonationCollected, DonationCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Staying in the same state is always allowed.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range donationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists from s.
func (s DonationStatus) Terminal() bool {
	return len(donationTransitions[s]) == 0
}

// FinancialStatus is the lifecycle state of a FinancialDonation.
//
//	pending → confirmed → received
//	pending | confirmed → cancelled
type FinancialStatus string

const (
	FinancialPending   FinancialStatus = "pending"
	FinancialConfirmed FinancialStatus = "confirmed"
	FinancialReceived  FinancialStatus = "received"
	FinancialCancelled FinancialStatus = "cancelled"
)

var financialTransitions = map[FinancialStatus][]FinancialStatus{
	FinancialPending:   {FinancialConfirmed, FinancialCancelled},
	FinancialConfirmed: {FinancialReceived, FinancialCancelled},
}

// ParseFinancialStatus returns the status named by s, or false when s is not
// a financial donation status.
func ParseFinancialStatus(s string) (FinancialStatus, bool) {
	switch st := FinancialStatus(s); st {
	case FinancialPending, FinancialConfirmed, FinancialReceived, FinancialCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s FinancialStatus) CanTransitionTo(next FinancialStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range financialTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists from s.
func (s FinancialStatus) Terminal() bool {
	return len(financialTransitions[s]) == 0
}
