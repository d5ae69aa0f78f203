package dto

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required,max=120"`
	Specialty string `json:"specialty,omitempty" binding:"omitempty,max=120"`
	Email     string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Phone     string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Available *bool  `json:"available,omitempty"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=120"`
	Specialty *string `json:"specialty,omitempty" binding:"omitempty,max=120"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Available *bool   `json:"available,omitempty"`
}

type ProfessionalItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Available bool   `json:"available"`
	CreatedAt string `json:"created_at,omitempty"`
}
