package models

// AnchorID is the lodging every non-empty day starts from.
const AnchorID = "hotel-dormy-inn"

type WalkLoad string

const (
	WalkLoadLow    WalkLoad = "low"
	WalkLoadMedium WalkLoad = "medium"
	WalkLoadHigh   WalkLoad = "high"
)

// Valid reports whether w is empty or one of the known walk loads.
func (w WalkLoad) Valid() bool {
	switch w {
	case "", WalkLoadLow, WalkLoadMedium, WalkLoadHigh:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Place struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Area        string       `json:"area"`
	Type        string       `json:"type"`
	EstMin      *int         `json:"estMin,omitempty"`
	WalkLoad    WalkLoad     `json:"walkLoad,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Address     string       `json:"address,omitempty"`
	PlaceID     string       `json:"placeId,omitempty"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
	Rating      *float64     `json:"rating,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p Place) Clone() Place {
	c := p
	if p.EstMin != nil {
		v := *p.EstMin
		c.EstMin = &v
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.Coordinates != nil {
		v := *p.Coordinates
		c.Coordinates = &v
	}
	if p.Rating != nil {
		v := *p.Rating
		c.Rating = &v
	}
	return c
}

// Minutes returns the estimated visit duration, zero when unknown.
func (p Place) Minutes() int {
	if p.EstMin == nil {
		return 0
	}
	return *p.EstMin
}
