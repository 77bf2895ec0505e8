package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu organisasi. Setiap repo WAJIB memakai ini
// (atau filter organization_id eksplisit) di semua read/write.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}
