package request

// UpdateTableStatusRequest sets a table's raw status code
type UpdateTableStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// TableRequest represents a create/update table request
type TableRequest struct {
	Name         string `json:"table_name" binding:"required"`
	DepartmentID uint   `json:"departmentid" binding:"required"`
	Capacity     int    `json:"capacity" binding:"gte=0"`
}
