package seed

type serviceRow struct {
	Name        string
	Description string
}

var demoServices = []serviceRow{
	{"General Practice", "Primary care consultation with GP"},
	{"Cardiology", "Heart and cardiovascular system specialist care"},
	{"Dermatology", "Skin, hair, and nail conditions treatment"},
	{"Orthopedics", "Bone, joint, and muscle disorders treatment"},
	{"Mental Health", "Psychological and psychiatric care services"},
	{"Physiotherapy", "Physical rehabilitation and movement therapy"},
	{"Radiology", "Medical imaging and diagnostic scans"},
	{"Blood Tests", "Laboratory testing and blood work"},
	{"Vaccination", "Immunization and preventive care"},
	{"Diabetes Care", "Diabetes management and monitoring"},
	{"Respiratory Care", "Lung and breathing disorders treatment"},
	{"Ophthalmology", "Eye care and vision services"},
}

type patientRow struct {
	NHSNumber string
	FirstName string
	LastName  string
	DOB       string
	Phone     string
	Email     string
}

var demoPatients = []patientRow{
	{"485-777-1234", "James", "Smith", "1985-03-15", "07700 900123", "james.smith@email.com"},
	{"485-777-2345", "Emily", "Johnson", "1992-07-22", "07700 900234", "emily.johnson@email.com"},
	{"485-777-3456", "Michael", "Williams", "1978-11-08", "07700 900345", "michael.williams@email.com"},
	{"485-777-4567", "Sarah", "Brown", "1990-01-30", "07700 900456", "sarah.brown@email.com"},
	{"485-777-5678", "David", "Jones", "1983-09-12", "07700 900567", "david.jones@email.com"},
	{"485-777-6789", "Emma", "Davis", "1995-05-18", "07700 900678", "emma.davis@email.com"},
	{"485-777-7890", "Robert", "Miller", "1970-12-03", "07700 900789", "robert.miller@email.com"},
	{"485-777-8901", "Lisa", "Wilson", "1988-04-25", "07700 900890", "lisa.wilson@email.com"},
	{"485-777-9012", "Christopher", "Moore", "1976-08-14", "07700 900901", "chris.moore@email.com"},
	{"485-777-0123", "Amanda", "Taylor", "1993-10-07", "07700 900012", "amanda.taylor@email.com"},
	{"485-777-1357", "Thomas", "Anderson", "1981-06-20", "07700 900135", "thomas.anderson@email.com"},
	{"485-777-2468", "Rachel", "Thompson", "1987-02-14", "07700 900246", "rachel.thompson@email.com"},
	{"485-777-3691", "Daniel", "White", "1979-09-28", "07700 900369", "daniel.white@email.com"},
	{"485-777-4825", "Jennifer", "Harris", "1991-12-11", "07700 900482", "jennifer.harris@email.com"},
	{"485-777-5936", "Matthew", "Clark", "1984-03-05", "07700 900593", "matthew.clark@email.com"},
}

var demoLocations = []string{
	"Room 101", "Room 102", "Room 201", "Clinic A", "Clinic B", "Ward 3", "Radiology Dept", "Lab",
}

// Status weights over scheduled, completed, cancelled, no-show.
var (
	pastWeights   = []int{10, 70, 15, 5}
	futureWeights = []int{85, 5, 8, 2}
)
