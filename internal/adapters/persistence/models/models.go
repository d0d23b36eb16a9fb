package models

import (
	"time"

	"gorm.io/gorm"
)

// Default currency labelling for amounts created by the system.
const (
	DefaultCurrency = "USD"
	DefaultUnit     = "cent"
)

// Amount is a monetary value in minor units. Embedded into owning rows with
// a column prefix rather than stored in its own table.
type Amount struct {
	Value    int64  `gorm:"not null;default:0" json:"value"`
	Currency string `gorm:"size:10;not null" json:"currency"`
	Unit     string `gorm:"size:10;not null" json:"unit"`
}

// CompositeAmount is an amount expressed as a multiset of coin
// denominations, used for dispensed change.
type CompositeAmount struct {
	Value    []int64 `json:"value"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit"`
}

// Privilege is a single grantable capability attached to a role.
type Privilege string

const (
	PrivilegeViewProduct   Privilege = "VIEW_PRODUCT"
	PrivilegeAddProduct    Privilege = "ADD_PRODUCT"
	PrivilegeUpdateProduct Privilege = "UPDATE_PRODUCT"
	PrivilegeDeleteProduct Privilege = "DELETE_PRODUCT"
	PrivilegeDeposit       Privilege = "DEPOSIT"
	PrivilegePurchase      Privilege = "PURCHASE"
	PrivilegeAll           Privilege = "ALL"
)

// Role represents the roles table. Static reference data seeded at startup.
type Role struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Privileges []Privilege `gorm:"serializer:json;type:text" json:"privileges"`
	IsAdmin    bool        `gorm:"default:false" json:"is_admin"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

// Machine represents the machines table: the issuing vending machine
// client a user account is bound to.
type Machine struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	ClientID     string    `gorm:"uniqueIndex;size:64;not null" json:"client_id"`
	ClientSecret string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Machine) TableName() string {
	return "machines"
}

// User represents the users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Deposit   Amount    `gorm:"embedded;embeddedPrefix:deposit_" json:"deposit"`
	RoleID    uint      `gorm:"not null;index" json:"role_id"`
	MachineID uint      `gorm:"not null" json:"machine_id"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Role    *Role    `gorm:"foreignKey:RoleID" json:"-"`
	Machine *Machine `gorm:"foreignKey:MachineID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Deposit   Amount    `json:"deposit"`
	RoleID    uint      `json:"role_id"`
	MachineID uint      `json:"machine_id"`
	IsAdmin   bool      `json:"is_admin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Deposit:   u.Deposit,
		RoleID:    u.RoleID,
		MachineID: u.MachineID,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Product represents the products table. Product names are unique per
// seller, not globally.
type Product struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProductName        string    `gorm:"size:100;not null;uniqueIndex:idx_products_name_seller" json:"product_name"`
	ProductDescription string    `gorm:"type:text" json:"product_description,omitempty"`
	AmountAvailable    int64     `gorm:"not null" json:"amount_available"`
	Cost               Amount    `gorm:"embedded;embeddedPrefix:cost_" json:"cost"`
	SellerID           uint      `gorm:"not null;uniqueIndex:idx_products_name_seller;index" json:"seller_id"`
	Version            uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Seller *User `gorm:"foreignKey:SellerID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductResponse DTO
type ProductResponse struct {
	ID                 uint      `json:"id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description,omitempty"`
	AmountAvailable    int64     `json:"amount_available"`
	Cost               Amount    `json:"cost"`
	SellerID           uint      `json:"seller_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *Product) ToResponse() *ProductResponse {
	return &ProductResponse{
		ID:                 p.ID,
		ProductName:        p.ProductName,
		ProductDescription: p.ProductDescription,
		AmountAvailable:    p.AmountAvailable,
		Cost:               p.Cost,
		SellerID:           p.SellerID,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// Purchase statuses. CANCELLED is reserved: failed purchases roll back
// entirely instead of persisting a terminal row.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Purchase represents the purchases table: an append-mostly ledger entry.
// SellerID is copied from the product at creation time.
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	BuyerID   uint      `gorm:"not null;index" json:"buyer_id"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	Amount    Amount    `gorm:"embedded;embeddedPrefix:amount_" json:"amount"`
	Status    string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&Machine{},
		&User{},
		&Product{},
		&Purchase{},
	)
}
