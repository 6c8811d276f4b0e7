package models

// DueType distinguishes one-off charges from recurring monthly installments.
type DueType string

const (
	DueTypeOneTime DueType = "one_time"
	DueTypeMonthly DueType = "monthly"
)

// ItemType identifies what a due is charged for.
type ItemType string

const (
	ItemAdmission    ItemType = "admission"
	ItemRegistration ItemType = "registration"
	ItemUniform      ItemType = "uniform"
	ItemCopy         ItemType = "copy"
	ItemBook         ItemType = "book"
	ItemHostelDress  ItemType = "hostel-dress"
	ItemMonthly      ItemType = "monthly"
	ItemMisc         ItemType = "misc"
)

// DueStatus tracks how much of a due has been settled.
type DueStatus string

const (
	DueStatusDue     DueStatus = "due"
	DueStatusPartial DueStatus = "partial"
	DueStatusPaid    DueStatus = "paid"
)

// PaymentStatus is the lifecycle of a recorded payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusPartial PaymentStatus = "partial"
)

// AccountStatus is the lifecycle of a student ledger account.
type AccountStatus string

const (
	AccountStatusOpen   AccountStatus = "open"
	AccountStatusClosed AccountStatus = "closed"
)

// Label returns the display name for an item type.
func (t ItemType) Label() string {
	switch t {
	case ItemAdmission:
		return "Admission Fee"
	case ItemRegistration:
		return "Registration Fee"
	case ItemUniform:
		return "Uniform Fee"
	case ItemCopy:
		return "Copy Fee"
	case ItemBook:
		return "Book Fee"
	case ItemHostelDress:
		return "Hostel Dress Fee"
	case ItemMonthly:
		return "Monthly Fee"
	case ItemMisc:
		return "Miscellaneous"
	}
	return string(t)
}
