package config

import (
	"log"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedStartupData seeds the static reference data the system needs on
// first boot: the Buyer/Seller/Admin roles, the default vending machine
// client and an initial admin account. Safe to run on every start.
func SeedStartupData(db *gorm.DB, cfg *Config) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedDefaultMachine(db, cfg); err != nil {
		return err
	}
	if err := seedAdminUser(db, cfg); err != nil {
		return err
	}

	log.Println("✅ Startup data seeded successfully")
	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{
			Name: "Buyer",
			Privileges: []models.Privilege{
				models.PrivilegeViewProduct,
				models.PrivilegePurchase,
				models.PrivilegeDeposit,
			},
		},
		{
			Name: "Seller",
			Privileges: []models.Privilege{
				models.PrivilegeViewProduct,
				models.PrivilegeAddProduct,
				models.PrivilegeUpdateProduct,
				models.PrivilegeDeleteProduct,
			},
		},
		{
			Name:       "Admin",
			Privileges: []models.Privilege{models.PrivilegeAll},
			IsAdmin:    true,
		},
	}

	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			log.Printf("   Created role: %s", role.Name)
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedDefaultMachine(db *gorm.DB, cfg *Config) error {
	var existing models.Machine
	err := db.Where("name = ?", cfg.Seed.MachineName).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	machine := &models.Machine{
		Name:         cfg.Seed.MachineName,
		ClientID:     uuid.NewString(),
		ClientSecret: uuid.NewString(),
	}
	if err := db.Create(machine).Error; err != nil {
		return err
	}

	log.Printf("   Created default machine client: %s [clientId: %s]", machine.Name, machine.ClientID)
	return nil
}

// seedAdminUser seeds the initial admin account so the first admin exists
// without manual database work. Skipped unless a seed password is set.
func seedAdminUser(db *gorm.DB, cfg *Config) error {
	if cfg.Seed.AdminPassword == "" {
		log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.Where("name = ?", cfg.Seed.AdminRole).First(&adminRole).Error; err != nil {
		return err
	}
	var machine models.Machine
	if err := db.Where("name = ?", cfg.Seed.MachineName).First(&machine).Error; err != nil {
		return err
	}

	hashed, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: cfg.Seed.AdminUsername,
		Password: hashed,
		Deposit: models.Amount{
			Value:    0,
			Currency: models.DefaultCurrency,
			Unit:     models.DefaultUnit,
		},
		RoleID:    adminRole.ID,
		MachineID: machine.ID,
		IsAdmin:   true,
		Version:   1,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("   Created admin user: %s", admin.Username)
	return nil
}
