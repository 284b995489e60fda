package model

// ContactsData holds the store's legal contact details.
// A single reference row (id=1) is seeded on boot and read by the contacts page.
type ContactsData struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Country string `gorm:"type:varchar(100)" json:"country"`
	TaxID   string `gorm:"type:varchar(20)" json:"tax_id"`
	Address string `gorm:"type:text" json:"address"`
}
