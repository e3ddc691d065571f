package appointment

// Record is one appointment. Patient and doctor are plain name strings; the
// upstream keeps no foreign key between appointments and patient records.
type Record struct {
	ID         string `json:"_id,omitempty"`
	Patient    string `json:"patient"`
	Doctor     string `json:"doctor"`
	Department string `json:"department"`
	Date       string `json:"date"`
	Problem    string `json:"problem"`
	Status     string `json:"status"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Departments is the fixed set of specialties an appointment can target.
var Departments = []string{
	"Radiology",
	"Cardiology",
	"Emergency",
	"Neurology",
	"Orthopedics",
	"ENT",
	"Dermatology",
}

// ValidDepartment reports whether dept is one of the fixed specialties.
func ValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}
