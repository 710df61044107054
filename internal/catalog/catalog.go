// Package catalog lists the paid products the site sells: written reports
// and live consultations. Prices are in RSD.
package catalog

// Report is a written astrological report.
type Report struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// Consultation is a bookable session.
type Consultation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
}

// DefaultConsultationName is used when a request names no known consultation.
const DefaultConsultationName = "Opšta konsultacija"

var reports = []Report{
	{ID: "yearly", Name: "Godišnji izveštaj", Description: "Detaljna prognoza za narednih 12 meseci sa fokusom na ključne tranzite", Price: 3000},
	{ID: "career", Name: "Karijerni izveštaj", Description: "Analiza karijere, talenata i profesionalnog razvoja", Price: 2500},
	{ID: "relationship", Name: "Izveštaj o odnosima", Description: "Analiza ljubavnih i ličnih odnosa, kompatibilnost i izazovi", Price: 2500},
	{ID: "spiritual", Name: "Duhovni izveštaj", Description: "Uvid u duhovni put, svrhu i lični razvoj", Price: 2800},
	{ID: "children", Name: "Izveštaj za decu", Description: "Analiza potencijala, talenata i najboljih pristupa vaspitanju", Price: 2200},
}

var consultations = []Consultation{
	{ID: "general", Name: "Opšta konsultacija", Duration: "45 min", Price: "3500 RSD"},
	{ID: "detailed", Name: "Detaljna astrološka analiza", Duration: "90 min", Price: "6000 RSD"},
	{ID: "career", Name: "Karijerno savetovanje", Duration: "60 min", Price: "4500 RSD"},
	{ID: "relationship", Name: "Analiza odnosa", Duration: "60 min", Price: "4500 RSD"},
	{ID: "transit", Name: "Analiza tranzita i progresija", Duration: "75 min", Price: "5500 RSD"},
}

// Reports returns all reports in catalog order.
func Reports() []Report { return append([]Report(nil), reports...) }

// Consultations returns all consultation types in catalog order.
func Consultations() []Consultation { return append([]Consultation(nil), consultations...) }

// ReportByID looks up a report.
func ReportByID(id string) (Report, bool) {
	for _, r := range reports {
		if r.ID == id {
			return r, true
		}
	}
	return Report{}, false
}

// Resolve returns the reports named by ids, in catalog order, and their
// summed price. Unknown and repeated ids are ignored.
func Resolve(ids []string) ([]Report, int) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var (
		out   []Report
		total int
	)
	for _, r := range reports {
		if want[r.ID] {
			out = append(out, r)
			total += r.Price
		}
	}
	return out, total
}

// ConsultationByID looks up a consultation type.
func ConsultationByID(id string) (Consultation, bool) {
	for _, c := range consultations {
		if c.ID == id {
			return c, true
		}
	}
	return Consultation{}, false
}

// ConsultationName returns the display name for id, falling back to the
// general consultation.
func ConsultationName(id string) string {
	if c, ok := ConsultationByID(id); ok {
		return c.Name
	}
	return DefaultConsultationName
}
