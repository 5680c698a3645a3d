package models

// Product is a catalog item. All fields are required at creation and writes
// are admin-gated; reads are public.
type Product struct {
	BaseModel
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `gorm:"check:price >= 0" json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
}
