package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:manage_publication"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Privilege codes as constants
const (
	PrivManageProductPublication = "product:manage_publication"
	PrivDeleteProduct            = "product:delete"
	PrivManageArticlePublication = "article:manage_publication"
	PrivDeleteArticle            = "article:delete"
	PrivManageCategory           = "category:manage"
	PrivViewDashboard            = "dashboard:view"
	PrivViewUser                 = "user:view"
	PrivCreateUser               = "user:create"
	PrivUpdateUser               = "user:update"
	PrivDeleteUser               = "user:delete"
	PrivUpdateUserPrivilege      = "user:update_privilege"
)

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Moderation
	{Code: PrivManageProductPublication, Name: "Manage Product Publication"},
	{Code: PrivDeleteProduct, Name: "Delete Any Product"},
	{Code: PrivManageArticlePublication, Name: "Manage Article Publication"},
	{Code: PrivDeleteArticle, Name: "Delete Any Article"},
	// Catalog administration
	{Code: PrivManageCategory, Name: "Manage Categories"},
	// Moderation dashboard
	{Code: PrivViewDashboard, Name: "View Moderation Dashboard"},
	// User management
	{Code: PrivViewUser, Name: "View User"},
	{Code: PrivCreateUser, Name: "Create User"},
	{Code: PrivUpdateUser, Name: "Update User"},
	{Code: PrivDeleteUser, Name: "Delete User"},
	{Code: PrivUpdateUserPrivilege, Name: "Update User Privileges"},
}
