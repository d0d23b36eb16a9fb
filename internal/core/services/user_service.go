package services

import (
	"context"
	"strings"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/anietieasuquo/vending-machine/internal/pkg/coins"
	"github.com/anietieasuquo/vending-machine/internal/pkg/password"
)

const (
	minUsernameLength = 5
	maxUsernameLength = 20

	// RoleBuyer is the only role that may carry an initial deposit.
	RoleBuyer = "Buyer"
)

// UserService handles user account business logic: account creation,
// deposit accounting and guarded mutations. Every mutation funnels through
// the repository's optimistic-locked write.
type UserService struct {
	userRepo    repositories.UserRepository
	roleRepo    repositories.RoleRepository
	machineRepo repositories.MachineRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	machineRepo repositories.MachineRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		machineRepo: machineRepo,
	}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Username string         `json:"username"`
	Password string         `json:"password"`
	Deposit  *models.Amount `json:"deposit,omitempty"`
	Role     string         `json:"role"`
	Machine  string         `json:"machine"`
}

// CreateUser creates a buyer or seller account. The role and issuing
// machine are resolved by name; only buyers receive an initial deposit and
// it must be a single accepted coin.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	role, machine, err := s.resolveRoleAndMachine(ctx, input)
	if err != nil {
		return nil, err
	}

	if role.IsAdmin {
		return nil, domain.Validation("invalid role for user")
	}

	depositValue := int64(0)
	if strings.EqualFold(input.Role, RoleBuyer) {
		if input.Deposit == nil {
			return nil, domain.Validation("invalid deposit")
		}
		if err := coins.ValidateDeposit(input.Deposit.Value); err != nil {
			return nil, err
		}
		depositValue = input.Deposit.Value
	}

	return s.createAccount(ctx, input, role, machine, depositValue, false)
}

// CreateAdmin creates an admin account. The supplied role must be an admin
// role; admins never hold a deposit.
func (s *UserService) CreateAdmin(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	role, machine, err := s.resolveRoleAndMachine(ctx, input)
	if err != nil {
		return nil, err
	}

	if !role.IsAdmin {
		return nil, domain.Validation("invalid role for admin")
	}

	return s.createAccount(ctx, input, role, machine, 0, true)
}

func (s *UserService) resolveRoleAndMachine(ctx context.Context, input *CreateUserInput) (*models.Role, *models.Machine, error) {
	if input.Username == "" || input.Password == "" || input.Role == "" || input.Machine == "" {
		return nil, nil, domain.Validation("invalid user data, cannot be serviced")
	}

	if err := checkUsernameAndPassword(input.Username, input.Password); err != nil {
		return nil, nil, err
	}

	machine, err := s.machineRepo.FindByName(ctx, input.Machine)
	if err != nil {
		return nil, nil, err
	}
	if machine == nil {
		return nil, nil, domain.NotFound("machine not found")
	}

	role, err := s.roleRepo.FindByName(ctx, input.Role)
	if err != nil {
		return nil, nil, err
	}
	if role == nil {
		return nil, nil, domain.NotFound("role not found")
	}

	return role, machine, nil
}

func (s *UserService) createAccount(
	ctx context.Context,
	input *CreateUserInput,
	role *models.Role,
	machine *models.Machine,
	depositValue int64,
	isAdmin bool,
) (*models.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("user already exists")
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	currency, unit := models.DefaultCurrency, models.DefaultUnit
	if input.Deposit != nil && input.Deposit.Currency != "" {
		currency, unit = input.Deposit.Currency, input.Deposit.Unit
	}

	user := &models.User{
		Username: input.Username,
		Password: hashed,
		Deposit: models.Amount{
			Value:    depositValue,
			Currency: currency,
			Unit:     unit,
		},
		RoleID:    role.ID,
		MachineID: machine.ID,
		IsAdmin:   isAdmin,
		Version:   1,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByID gets a user by ID; absence is not an error
func (s *UserService) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// FindAll lists all users
func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// MakeDeposit adds a single accepted coin to the user's deposit
func (s *UserService) MakeDeposit(ctx context.Context, id uint, amount models.Amount) (*models.User, error) {
	if err := coins.ValidateDeposit(amount.Value); err != nil {
		return nil, err
	}

	user, err := s.getExpectedUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Deposit.Value += amount.Value
	if amount.Currency != "" {
		user.Deposit.Currency = amount.Currency
		user.Deposit.Unit = amount.Unit
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetDeposit sets the user's deposit back to zero, preserving currency
func (s *UserService) ResetDeposit(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.getExpectedUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Deposit.Value = 0
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole switches the user to the role with the given name
func (s *UserService) UpdateRole(ctx context.Context, id uint, roleName string) (*models.User, error) {
	if roleName == "" {
		return nil, domain.Validation("invalid role name")
	}

	user, err := s.getExpectedUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NotFound("role not found")
	}

	user.RoleID = role.ID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the user's password hash
func (s *UserService) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	if !password.Validate(newPassword) {
		return domain.Validation("invalid password length (minimum %d characters)", password.MinLength)
	}

	user, err := s.getExpectedUserByID(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// RemoveUser deletes a user account
func (s *UserService) RemoveUser(ctx context.Context, id uint) error {
	if _, err := s.getExpectedUserByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) getExpectedUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	return user, nil
}

func checkUsernameAndPassword(username, pass string) error {
	name := strings.TrimSpace(username)
	if len(name) < minUsernameLength || len(name) > maxUsernameLength {
		return domain.Validation("invalid username length (must be %d-%d characters)", minUsernameLength, maxUsernameLength)
	}
	if !password.Validate(strings.TrimSpace(pass)) {
		return domain.Validation("invalid password length (minimum %d characters)", password.MinLength)
	}
	return nil
}
