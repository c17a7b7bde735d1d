package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

const duplicateMobileMessage = "Customer with this mobile number already exists"

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name      string
	Mobile    string
	VehicleNo string
	Email     *string
	Source    enum.CustomerSource
}

// CreateCustomer registers a vehicle owner. Mobile numbers are unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:      strings.TrimSpace(input.Name),
		Mobile:    utils.NormalizeMobile(input.Mobile),
		VehicleNo: utils.NormalizeVehicleNo(input.VehicleNo),
		Email:     cleanEmail(input.Email),
		Source:    input.Source,
	}
	if customer.Name == "" || customer.Mobile == "" || customer.VehicleNo == "" {
		return nil, apperror.NewBadRequestError("Missing required fields (name, mobile, vehicle_no)")
	}

	err := s.customerRepo.Create(ctx, customer)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.NewDuplicateError(duplicateMobileMessage)
	}
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to create customer", err)
	}
	return customer, nil
}

// GetCustomer retrieves a customer with their service history
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetWithHistory(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load customer", err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching search on name, mobile or vehicle
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list customers", err)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID        uuid.UUID
	Name      *string
	Mobile    *string
	VehicleNo *string
	Email     *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load customer", err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Mobile != nil {
		customer.Mobile = utils.NormalizeMobile(*input.Mobile)
	}
	if input.VehicleNo != nil {
		customer.VehicleNo = utils.NormalizeVehicleNo(*input.VehicleNo)
	}
	if input.Email != nil {
		customer.Email = cleanEmail(input.Email)
	}
	if customer.Name == "" || customer.Mobile == "" || customer.VehicleNo == "" {
		return nil, apperror.NewBadRequestError("Name, mobile and vehicle number cannot be empty")
	}

	err = s.customerRepo.Update(ctx, customer)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.NewDuplicateError(duplicateMobileMessage)
	}
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to update customer", err)
	}
	return customer, nil
}

// CustomerImportRow is one spreadsheet row offered for import. Row is the
// number shown to the user in error messages.
type CustomerImportRow struct {
	Row       int
	Name      string
	Mobile    string
	VehicleNo string
	Email     string
}

// ImportRowError explains why a row was skipped
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises a customer import
type ImportResult struct {
	Imported  int               `json:"imported"`
	Skipped   int               `json:"skipped"`
	Errors    []ImportRowError  `json:"errors"`
	Customers []entity.Customer `json:"customers"`
}

// maxImportEcho caps how many created customers are echoed back
const maxImportEcho = 10

// ImportCustomers creates a customer for every complete row whose mobile is
// not yet registered. Bad rows are skipped and reported; they never abort
// the import.
func (s *CustomerService) ImportCustomers(ctx context.Context, rows []CustomerImportRow) (*ImportResult, error) {
	result := &ImportResult{Errors: []ImportRowError{}, Customers: []entity.Customer{}}

	for _, row := range rows {
		skip := func(format string, args ...interface{}) {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRowError{
				Row:     row.Row,
				Message: fmt.Sprintf("Row %d: ", row.Row) + fmt.Sprintf(format, args...),
			})
		}

		mobile := utils.NormalizeMobile(row.Mobile)
		if strings.TrimSpace(row.Name) == "" || mobile == "" || strings.TrimSpace(row.VehicleNo) == "" {
			skip("Missing required fields (name, mobile, vehicle_no)")
			continue
		}

		var email *string
		if row.Email != "" {
			email = &row.Email
		}
		customer, err := s.CreateCustomer(ctx, &CreateCustomerInput{
			Name:      row.Name,
			Mobile:    mobile,
			VehicleNo: row.VehicleNo,
			Email:     email,
			Source:    enum.CustomerSourceExcel,
		})
		if err != nil {
			if apperror.KindOf(err) == apperror.KindConflict {
				skip("User with mobile %s already exists", mobile)
				continue
			}
			if apperror.KindOf(err) == apperror.KindUpstream {
				return nil, err
			}
			skip("%s", err.Error())
			continue
		}

		result.Imported++
		if len(result.Customers) < maxImportEcho {
			result.Customers = append(result.Customers, *customer)
		}
	}

	log.Printf("[customers] import finished: %d imported, %d skipped", result.Imported, result.Skipped)
	return result, nil
}

func cleanEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
