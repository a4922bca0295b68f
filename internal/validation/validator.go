// Package validation checks intake payloads and turns failures into
// per-field Dutch messages.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
)

var postcodeRe = regexp.MustCompile(`^[1-9][0-9]{3}\s?[A-Z]{2}$`)

// V is the shared validator instance.
var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("postcode", func(fl validator.FieldLevel) bool {
		return ValidPostcode(fl.Field().String())
	})
	return v
}

func ValidPostcode(s string) bool { return postcodeRe.MatchString(s) }

// ProjectInput is the decoded project intake body. Booleans are pointers so
// a missing value is distinguishable from false.
type ProjectInput struct {
	Name         string            `json:"naam" validate:"required"`
	Code         string            `json:"code" validate:"required"`
	Client       string            `json:"opdrachtgever" validate:"required"`
	Address      string            `json:"adres" validate:"required"`
	Postcode     string            `json:"postcode" validate:"postcode"`
	City         string            `json:"plaats" validate:"required"`
	Latitude     *float64          `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64          `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	CableLength  float64           `json:"kabellengte" validate:"gt=0"`
	Utilities    domain.StringList `json:"nutsvoorzieningen" validate:"min=1,dive,oneof=elektra gas water"`
	Connection   string            `json:"soortAansluiting" validate:"oneof=nieuw verzwaren vervangen tijdelijk"`
	Capacity     float64           `json:"capaciteit" validate:"gt=0"`
	Surfacing    string            `json:"soortVerharding" validate:"oneof=klinkers asfalt tegels onverhard"`
	Boring       *bool             `json:"boringNoodzakelijk" validate:"required"`
	Route        string            `json:"traceBeschrijving,omitempty"`
	Crossings    string            `json:"kruisingen,omitempty"`
	Obstacles    string            `json:"obstakels,omitempty"`
	Notify       *bool             `json:"buurtInformeren" validate:"required"`
	NotifyNote   string            `json:"buurtNotitie,omitempty"`
	RoadClosure  *bool             `json:"wegafzettingNodig" validate:"required"`
	ClosureTime  string            `json:"wegafzettingPeriode,omitempty"`
	Permits      domain.StringList `json:"vergunningen,omitempty"`
	SpecialRisks string            `json:"bijzondereRisicos,omitempty"`
	Operator     string            `json:"uitvoerder" validate:"required"`
	Supervisor   string            `json:"toezichthouder" validate:"required"`
	Reachability string            `json:"bereikbaarheden" validate:"required"`
}

// ReportInput is the report save body.
type ReportInput struct {
	ProjectID domain.Ref `json:"projectId" validate:"gt=0"`
	Content   string     `json:"content" validate:"required"`
}

var fieldMessages = map[string]string{
	"naam":               "Projectnaam is verplicht",
	"code":               "Projectcode is verplicht",
	"opdrachtgever":      "Opdrachtgever is verplicht",
	"adres":              "Adres is verplicht",
	"postcode":           "Ongeldige postcode (formaat: 1234 AB)",
	"plaats":             "Plaats is verplicht",
	"latitude":           "Ongeldige breedtegraad",
	"longitude":          "Ongeldige lengtegraad",
	"kabellengte":        "Kabellengte moet een positief getal zijn",
	"soortAansluiting":   "Ongeldige soort aansluiting",
	"capaciteit":         "Capaciteit moet een positief getal zijn",
	"soortVerharding":    "Ongeldige soort verharding",
	"boringNoodzakelijk": "Boring noodzakelijk is verplicht",
	"buurtInformeren":    "Buurt informeren is verplicht",
	"wegafzettingNodig":  "Wegafzetting nodig is verplicht",
	"uitvoerder":         "Uitvoerder is verplicht",
	"toezichthouder":     "Toezichthouder is verplicht",
	"bereikbaarheden":    "Bereikbaarheden zijn verplicht",
	"projectId":          "Project ID is verplicht",
	"content":            "Rapportinhoud is verplicht",
}

func messageFor(fe validator.FieldError) (string, string) {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if field == "nutsvoorzieningen" {
		if fe.Tag() == "min" {
			return field, "Selecteer minimaal één nutsvoorziening"
		}
		return field, "Ongeldige nutsvoorziening"
	}
	if msg, ok := fieldMessages[field]; ok {
		return field, msg
	}
	return field, "Ongeldige waarde"
}

// collect maps validator output to a ValidationError, one message per field.
func collect(err error) *domain.ValidationError {
	out := &domain.ValidationError{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Add("", err.Error())
		return out
	}
	seen := map[string]bool{}
	for _, fe := range verrs {
		field, msg := messageFor(fe)
		if seen[field] {
			continue
		}
		seen[field] = true
		out.Add(field, msg)
	}
	return out
}

func (in *ProjectInput) trim() {
	for _, s := range []*string{
		&in.Name, &in.Code, &in.Client, &in.Address, &in.City,
		&in.Connection, &in.Surfacing, &in.Route, &in.Crossings, &in.Obstacles,
		&in.NotifyNote, &in.ClosureTime, &in.SpecialRisks,
		&in.Operator, &in.Supervisor, &in.Reachability,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// ValidateProject returns the normalized project or a *domain.ValidationError.
func ValidateProject(in ProjectInput) (*projects.Project, error) {
	in.trim()
	if err := V.Struct(in); err != nil {
		return nil, collect(err)
	}
	permits := in.Permits
	if permits == nil {
		permits = domain.StringList{}
	}
	return &projects.Project{
		Name:         in.Name,
		Code:         in.Code,
		Client:       in.Client,
		Address:      in.Address,
		Postcode:     in.Postcode,
		City:         in.City,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		CableLength:  in.CableLength,
		Utilities:    dedupe(in.Utilities),
		Connection:   projects.ConnectionType(in.Connection),
		Capacity:     in.Capacity,
		Surfacing:    projects.Surfacing(in.Surfacing),
		Boring:       *in.Boring,
		Route:        in.Route,
		Crossings:    in.Crossings,
		Obstacles:    in.Obstacles,
		Notify:       *in.Notify,
		NotifyNote:   in.NotifyNote,
		RoadClosure:  *in.RoadClosure,
		ClosureTime:  in.ClosureTime,
		Permits:      permits,
		SpecialRisks: in.SpecialRisks,
		Operator:     in.Operator,
		Supervisor:   in.Supervisor,
		Reachability: in.Reachability,
	}, nil
}

func dedupe(list domain.StringList) domain.StringList {
	out := make(domain.StringList, 0, len(list))
	for _, v := range list {
		if !out.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

func ValidateReport(in ReportInput) error {
	in.Content = strings.TrimSpace(in.Content)
	if err := V.Struct(in); err != nil {
		verr := collect(err)
		verr.Summary = "Project ID en content zijn verplicht"
		return verr
	}
	return nil
}

// ValidateCategory checks a photo category value.
func ValidateCategory(c string) error {
	if !photos.Category(c).Valid() {
		return domain.BadRequest("Ongeldige categorie: " + c)
	}
	return nil
}
