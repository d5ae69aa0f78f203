package dto

type ProfessionalReport struct {
	ProfessionalID int64  `json:"professional_id"`
	Name           string `json:"name"`
	Appointments   int    `json:"appointments"`
	Completed      int    `json:"completed"`
	Revenue        string `json:"revenue"`
}

type ReportSummary struct {
	From                 string                `json:"from"`
	To                   string                `json:"to"`
	TotalAppointments    int                   `json:"total_appointments"`
	AppointmentsByStatus map[string]int        `json:"appointments_by_status"`
	Revenue              string                `json:"revenue"`
	Expenses             string                `json:"expenses"`
	Net                  string                `json:"net"`
	ByProfessional       []*ProfessionalReport `json:"by_professional"`
}

// ReportExportResponse carries either a download link or, without object
// storage, the CSV itself.
type ReportExportResponse struct {
	FileName  string `json:"file_name"`
	ObjectKey string `json:"object_key,omitempty"`
	URL       string `json:"url,omitempty"`
	CSV       string `json:"csv,omitempty"`
}
