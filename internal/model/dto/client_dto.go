package dto

type CreateClientRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	Email     string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Phone     string `json:"phone,omitempty" binding:"omitempty,max=30"`
	BirthDate string `json:"birth_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=120"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	BirthDate *string `json:"birth_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty" binding:"omitempty,max=2000"`
}

type ClientItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}
