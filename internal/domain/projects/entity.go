package projects

import (
	"time"

	"github.com/bryanwahyu/schouw/internal/domain"
)

// Utility enum (nutsvoorziening)
type Utility string

const (
	UtilityElektra Utility = "elektra"
	UtilityGas     Utility = "gas"
	UtilityWater   Utility = "water"
)

// ConnectionType enum (soort aansluiting)
type ConnectionType string

const (
	ConnectionNew       ConnectionType = "nieuw"
	ConnectionUpgrade   ConnectionType = "verzwaren"
	ConnectionReplace   ConnectionType = "vervangen"
	ConnectionTemporary ConnectionType = "tijdelijk"
)

// Surfacing enum (soort verharding)
type Surfacing string

const (
	SurfacingPavers  Surfacing = "klinkers"
	SurfacingAsphalt Surfacing = "asfalt"
	SurfacingTiles   Surfacing = "tegels"
	SurfacingUnpaved Surfacing = "onverhard"
)

// Aggregate Root: Project
type Project struct {
	ID           int64             `json:"id"`
	Name         string            `json:"naam"`
	Code         string            `json:"code"`
	Client       string            `json:"opdrachtgever"`
	Address      string            `json:"adres"`
	Postcode     string            `json:"postcode"`
	City         string            `json:"plaats"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	CableLength  float64           `json:"kabellengte"`
	Utilities    domain.StringList `json:"nutsvoorzieningen"`
	Connection   ConnectionType    `json:"soortAansluiting"`
	Capacity     float64           `json:"capaciteit"`
	Surfacing    Surfacing         `json:"soortVerharding"`
	Boring       bool              `json:"boringNoodzakelijk"`
	Route        string            `json:"traceBeschrijving,omitempty"`
	Crossings    string            `json:"kruisingen,omitempty"`
	Obstacles    string            `json:"obstakels,omitempty"`
	Notify       bool              `json:"buurtInformeren"`
	NotifyNote   string            `json:"buurtNotitie,omitempty"`
	RoadClosure  bool              `json:"wegafzettingNodig"`
	ClosureTime  string            `json:"wegafzettingPeriode,omitempty"`
	Permits      domain.StringList `json:"vergunningen"`
	SpecialRisks string            `json:"bijzondereRisicos,omitempty"`
	Operator     string            `json:"uitvoerder"`
	Supervisor   string            `json:"toezichthouder"`
	Reachability string            `json:"bereikbaarheden"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (p *Project) Has(u Utility) bool { return p.Utilities.Contains(string(u)) }

// Location formats street, postcode and city on one line.
func (p *Project) Location() string {
	return p.Address + ", " + p.Postcode + " " + p.City
}
