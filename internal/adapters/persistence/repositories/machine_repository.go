package repositories

import (
	"context"
	"errors"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// machineRepository implements MachineRepository interface
type machineRepository struct {
	db *gorm.DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

// Create creates a new machine client
func (r *machineRepository) Create(ctx context.Context, machine *models.Machine) error {
	return r.db.WithContext(ctx).Create(machine).Error
}

// FindByName gets a machine client by name
func (r *machineRepository) FindByName(ctx context.Context, name string) (*models.Machine, error) {
	var machine models.Machine
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&machine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}
