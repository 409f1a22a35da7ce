package models

// Category labels offered to the oracle when no taxonomy file is configured.
const (
	CategoryGroceries     = "groceries"
	CategoryTransport     = "transport"
	CategoryElectronics   = "electronics"
	CategorySalary        = "salary"
	CategoryEntertainment = "entertainment"
	CategoryOther         = "other"
)

// DefaultCategories is the closed category set, in prompt order.
var DefaultCategories = []string{
	CategoryGroceries,
	CategoryTransport,
	CategoryElectronics,
	CategorySalary,
	CategoryEntertainment,
	CategoryOther,
}

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
