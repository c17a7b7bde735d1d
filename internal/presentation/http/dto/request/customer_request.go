package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Mobile    string  `json:"mobile" binding:"required,mobile"`
	VehicleNo string  `json:"vehicle_no" binding:"required,max=30"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=255"`
	Mobile    *string `json:"mobile" binding:"omitempty,mobile"`
	VehicleNo *string `json:"vehicle_no" binding:"omitempty,min=1,max=30"`
	Email     *string `json:"email" binding:"omitempty,email"`
}
