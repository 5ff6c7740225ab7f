package models

// Feature flag keys evaluated on the dashboard.
const (
	FlagNewUI     = "new-ui"
	FlagDarkMode  = "dark_mode"
	FlagExportCSV = "export_csv"
)

// InventoryStats are the counters shown on the dashboard.
type InventoryStats struct {
	TotalProducts   int `json:"total_products" db:"total_products"`
	TotalCategories int `json:"total_categories" db:"total_categories"`
	LowStock        int `json:"low_stock" db:"low_stock"`
}

// Dashboard is the dashboard payload for one identity.
type Dashboard struct {
	User  Identified      `json:"user"`
	Stats InventoryStats  `json:"stats"`
	Flags map[string]bool `json:"flags"`
}
