package relay

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/osteele/liquid"

	"github.com/zvezde365/zvezde-api/internal/catalog"
)

const (
	totalPricePlaceholder = "Izračunati ukupnu cenu"
	noMessagePlaceholder  = "Nije navedeno"
)

const personalDetails = `
<p><strong>Ime i prezime:</strong> {{ fullName | escape }}</p>
<p><strong>Email:</strong> {{ email | escape }}</p>
<p><strong>Telefon:</strong> {{ phone | escape }}</p>
<p><strong>Pol:</strong> {{ gender }}</p>
<p><strong>Datum rođenja:</strong> {{ birthDate | escape }}</p>
<p><strong>Vreme rođenja:</strong> {{ birthTime | escape }}</p>
<p><strong>Mesto rođenja:</strong> {{ birthPlace | escape }}</p>
`

const messageBox = `<div style="background-color: #f8f9fa; padding: 12px; border-radius: 4px; margin-top: 8px;">`

var templateSources = map[FormType]string{
	FormNewsletter: `
<h1>Nova pretplata na newsletter</h1>
<p><strong>Email:</strong> {{ email | escape }}</p>
<p>Korisnik se pretplatio na primanje horoskopa i astroloških saveta putem email-a.</p>
`,
	FormReports: `
<h1>Nova narudžbina astroloških izveštaja</h1>
<h2>Lični podaci</h2>` + personalDetails + `
<h2>Naručeni izveštaji</h2>
<table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
  <thead>
    <tr style="background-color: #3b0764; color: white;">
      <th style="padding: 8px; text-align: left; border: 1px solid #666;">Naziv izveštaja</th>
      <th style="padding: 8px; text-align: right; border: 1px solid #666;">Cena (RSD)</th>
    </tr>
  </thead>
  <tbody>
{%- for report in reports %}
    <tr style="border: 1px solid #666;">
      <td style="padding: 8px; border: 1px solid #666;">{{ report.name | escape }}</td>
      <td style="padding: 8px; text-align: right; border: 1px solid #666;">{{ report.price }}</td>
    </tr>
{%- endfor %}
    <tr style="background-color: #f8f9fa; font-weight: bold;">
      <td style="padding: 8px; border: 1px solid #666;">Ukupno:</td>
      <td style="padding: 8px; text-align: right; border: 1px solid #666;">{{ totalPrice }} RSD</td>
    </tr>
  </tbody>
</table>
`,
	FormNatalChart: `
<h1>Nova narudžbina natalne karte</h1>` + personalDetails,
	FormConsultation: `
<h1>Novi zahtev za astrološku konsultaciju</h1>
<p><strong>Ime i prezime:</strong> {{ fullName | escape }}</p>
<p><strong>Email:</strong> {{ email | escape }}</p>
<p><strong>Telefon:</strong> {{ phone | escape }}</p>
<p><strong>Tip konsultacije:</strong> {{ consultationType | escape }}</p>
<p><strong>Dodatne informacije:</strong></p>
` + messageBox + `
  {{ message | escape | br | default: "` + noMessagePlaceholder + `" }}
</div>
`,
	FormContact: `
<h1>Nova poruka sa kontakt forme</h1>
<p><strong>Ime i prezime:</strong> {{ fullName | escape }}</p>
<p><strong>Email:</strong> {{ email | escape }}</p>
<p><strong>Telefon:</strong> {{ phone | escape }}</p>
<p><strong>Tema:</strong> {{ subject | escape }}</p>
<p><strong>Poruka:</strong></p>
` + messageBox + `
  {{ message | escape | br }}
</div>
`,
}

const footerSource = `
<hr style="margin-top: 30px; margin-bottom: 20px; border: 0; border-top: 1px solid #eee;" />
<p style="color: #777; font-size: 14px;">Poslato sa: {{ site | escape }}</p>
`

const confirmationSource = `
<div style="font-family: 'Arial', sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: linear-gradient(to right, #4c1d95, #312e81); padding: 30px 20px; text-align: center; color: white; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 24px;">Dobrodošli u {{ site | escape }} newsletter!</h1>
  </div>
  <div style="background-color: #1f2937; padding: 30px 20px; color: #e5e7eb; border-radius: 0 0 10px 10px;">
    <p>Poštovani,</p>
    <p>Hvala vam na pretplati na naš newsletter! Od sada ćete redovno primati:</p>
    <ul style="padding-left: 20px;">
      <li>Nedeljne horoskopske prognoze</li>
      <li>Informacije o značajnim astrološkim događajima</li>
      <li>Personalizovane savete zasnovane na vašem zodijačkom znaku</li>
      <li>Ekskluzivne ponude za naše usluge</li>
    </ul>
    <p>Radujemo se što ćemo vam pružati vredan astrološki sadržaj i pomoći vam da bolje razumete uticaj zvezda na vaš život.</p>
    <p>Srdačan pozdrav,<br />
    Tim {{ site | escape }}</p>
    <hr style="border: 0; border-top: 1px solid #374151; margin: 20px 0;" />
    <p style="font-size: 12px; color: #9ca3af; text-align: center;">
      Ako više ne želite da primate naše email poruke, možete se odjaviti u bilo kom trenutku klikom na link za odjavu u budućim email porukama.
    </p>
  </div>
</div>
`

// ConfirmationSubject is the subject of the newsletter welcome email.
func ConfirmationSubject(site string) string {
	return fmt.Sprintf("Potvrda pretplate na %s newsletter", site)
}

// Rendered is a subject and HTML body ready to send.
type Rendered struct {
	Subject string
	HTML    string
}

// Renderer turns form data into operator emails. Templates are parsed once
// in NewRenderer; Render is safe for concurrent use.
type Renderer struct {
	site         string
	templates    map[FormType]*liquid.Template
	footer       *liquid.Template
	confirmation *liquid.Template
}

// NewRenderer parses every template. site is shown in the footer.
func NewRenderer(site string) (*Renderer, error) {
	engine := liquid.NewEngine()
	registerFilters(engine)

	r := &Renderer{site: site, templates: make(map[FormType]*liquid.Template, len(templateSources))}
	for ft, src := range templateSources {
		tpl, err := engine.ParseString(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", ft, err)
		}
		r.templates[ft] = tpl
	}

	var err error
	if r.footer, err = engine.ParseString(footerSource); err != nil {
		return nil, fmt.Errorf("parse footer: %w", err)
	}
	if r.confirmation, err = engine.ParseString(confirmationSource); err != nil {
		return nil, fmt.Errorf("parse confirmation: %w", err)
	}
	return r, nil
}

func registerFilters(engine *liquid.Engine) {
	engine.RegisterFilter("escape", func(s string) string {
		return html.EscapeString(s)
	})
	// br runs after escape, so the inserted tags survive.
	engine.RegisterFilter("br", func(s string) string {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		return strings.ReplaceAll(s, "\n", "<br />")
	})
	engine.RegisterFilter("default", func(value interface{}, fallback string) interface{} {
		if value == nil {
			return fallback
		}
		if s, ok := value.(string); ok && s == "" {
			return fallback
		}
		return value
	})
}

// Render builds the operator email for ft. Unknown form types use the
// contact template.
func (r *Renderer) Render(ft FormType, fd *FormData) (Rendered, error) {
	tpl, ok := r.templates[ft]
	if !ok {
		tpl = r.templates[FormContact]
	}

	bindings := r.bindings(fd)
	body, err := tpl.RenderString(bindings)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s template: %w", ft, err)
	}
	footer, err := r.footer.RenderString(bindings)
	if err != nil {
		return Rendered{}, fmt.Errorf("render footer: %w", err)
	}

	return Rendered{Subject: subject(ft, fd), HTML: body + footer}, nil
}

// RenderConfirmation builds the welcome email sent to a new subscriber.
func (r *Renderer) RenderConfirmation() (Rendered, error) {
	body, err := r.confirmation.RenderString(liquid.Bindings{"site": r.site})
	if err != nil {
		return Rendered{}, fmt.Errorf("render confirmation: %w", err)
	}
	return Rendered{Subject: ConfirmationSubject(r.site), HTML: body}, nil
}

func subject(ft FormType, fd *FormData) string {
	switch ft {
	case FormNewsletter:
		return "Nova pretplata na newsletter - " + fd.Email
	case FormReports:
		return "Nova narudžbina astroloških izveštaja - " + fd.FullName
	case FormNatalChart:
		return "Nova narudžbina natalne karte - " + fd.FullName
	case FormConsultation:
		return "Novi zahtev za konsultaciju - " + fd.FullName
	default:
		return "Nova poruka sa sajta - " + fd.Subject
	}
}

func genderLabel(g string) string {
	switch g {
	case "male":
		return "Muški"
	case "female":
		return "Ženski"
	default:
		return "Drugo"
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// reportLines prefers the priced lines sent by the form and otherwise
// prices reportTypes from the catalog.
func reportLines(fd *FormData) []map[string]interface{} {
	if fd.SelectedReports != nil {
		out := make([]map[string]interface{}, 0, len(fd.SelectedReports))
		for _, l := range fd.SelectedReports {
			out = append(out, map[string]interface{}{"id": l.ID, "name": l.Name, "price": formatPrice(l.Price)})
		}
		return out
	}

	out := make([]map[string]interface{}, 0, len(fd.ReportTypes))
	for _, id := range fd.ReportTypes {
		name, price := id, 0
		if r, ok := catalog.ReportByID(id); ok {
			name, price = r.Name, r.Price
		}
		out = append(out, map[string]interface{}{"id": id, "name": name, "price": strconv.Itoa(price)})
	}
	return out
}

func (r *Renderer) bindings(fd *FormData) liquid.Bindings {
	total := totalPricePlaceholder
	if fd.TotalPrice != nil && *fd.TotalPrice != 0 {
		total = formatPrice(*fd.TotalPrice)
	}

	consultation := fd.ConsultationTypeName
	if consultation == "" {
		consultation = catalog.ConsultationName(fd.ConsultationType)
	}

	return liquid.Bindings{
		"site":             r.site,
		"fullName":         fd.FullName,
		"email":            fd.Email,
		"phone":            fd.Phone,
		"gender":           genderLabel(fd.Gender),
		"birthDate":        string(fd.BirthDate),
		"birthTime":        fd.BirthTime.String(),
		"birthPlace":       fd.BirthPlace,
		"reports":          reportLines(fd),
		"totalPrice":       total,
		"consultationType": consultation,
		"subject":          fd.Subject,
		"message":          fd.Message,
	}
}
