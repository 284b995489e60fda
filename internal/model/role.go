package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, PRODUCT_MODERATOR
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin            = "ADMIN"
	RoleProductModerator = "PRODUCT_MODERATOR"
)

// DefaultRoles defines the default roles in the system.
// Customers carry no role at all; roles exist for the back office.
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleProductModerator,
		Name:        "Product Moderator",
		Description: "May manage publication and deletion of products and articles",
	},
}

// ModeratorPrivilegeCodes lists the privileges granted to PRODUCT_MODERATOR
var ModeratorPrivilegeCodes = []string{
	PrivManageProductPublication,
	PrivDeleteProduct,
	PrivManageArticlePublication,
	PrivDeleteArticle,
	PrivViewDashboard,
}
