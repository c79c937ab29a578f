package request

// CustomerRequest represents a create/update customer request
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Mobile  string  `json:"mobile" binding:"required,min=10,max=15"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
}
