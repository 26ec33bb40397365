package models

import "encoding/json"

type PlanKey string

const (
	PlanA PlanKey = "A"
	PlanB PlanKey = "B"
	PlanC PlanKey = "C"
	PlanD PlanKey = "D"
)

// PlanKeys lists every plan slot in display order.
var PlanKeys = []PlanKey{PlanA, PlanB, PlanC, PlanD}

// Valid reports whether k names one of the four plan slots.
func (k PlanKey) Valid() bool {
	for _, key := range PlanKeys {
		if k == key {
			return true
		}
	}
	return false
}

type DayPlan struct {
	Date  string   `json:"date"`
	Items []string `json:"items"`
}

// Plan is one itinerary draft. Days is the canonical visit structure;
// Unscheduled holds ids transferred into the plan that no day contains yet.
// The legacy flat "items" list only exists on the wire (see MarshalJSON).
type Plan struct {
	Key         PlanKey   `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Days        []DayPlan `json:"days,omitempty"`
	Unscheduled []string  `json:"-"`
}

// planWire is the JSON shape of a Plan. Days is a pointer so an empty
// "days": [] stays distinct from a plan that has no days field.
type planWire struct {
	Key         PlanKey    `json:"key"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Items       []string   `json:"items"`
	Days        *[]DayPlan `json:"days,omitempty"`
}

// Items derives the legacy flat list: day items in visit order followed by
// unscheduled ids, each id once.
func (p Plan) Items() []string {
	seen := make(map[string]bool)
	items := []string{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			items = append(items, id)
		}
	}
	for _, day := range p.Days {
		for _, id := range day.Items {
			add(id)
		}
	}
	for _, id := range p.Unscheduled {
		add(id)
	}
	return items
}

// Scheduled reports whether id occurs in any day of the plan.
func (p Plan) Scheduled(id string) bool {
	for _, day := range p.Days {
		for _, item := range day.Items {
			if item == id {
				return true
			}
		}
	}
	return false
}

func (p Plan) MarshalJSON() ([]byte, error) {
	w := planWire{
		Key:         p.Key,
		Title:       p.Title,
		Description: p.Description,
		Items:       p.Items(),
	}
	if p.Days != nil {
		w.Days = &p.Days
	}
	return json.Marshal(w)
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	var w planWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Plan{
		Key:         w.Key,
		Title:       w.Title,
		Description: w.Description,
	}
	if w.Days != nil {
		p.Days = *w.Days
	}
	p.Unscheduled = p.unscheduledFrom(w.Items)
	return nil
}

// unscheduledFrom keeps the ids of a legacy flat list that no day holds.
func (p Plan) unscheduledFrom(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range items {
		if seen[id] || p.Scheduled(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Normalize drops unscheduled ids that a day now holds.
func (p Plan) Normalize() Plan {
	p.Unscheduled = p.unscheduledFrom(p.Unscheduled)
	return p
}

// Clone returns a deep copy of p.
func (p Plan) Clone() Plan {
	c := p
	if p.Days != nil {
		c.Days = make([]DayPlan, len(p.Days))
		for i, day := range p.Days {
			c.Days[i] = DayPlan{Date: day.Date, Items: cloneStrings(day.Items)}
		}
	}
	c.Unscheduled = cloneStrings(p.Unscheduled)
	return c
}

type AppMeta struct {
	City      string `json:"city"`
	DateRange string `json:"dateRange"`
	Base      string `json:"base"`
}

type AppState struct {
	PlaceBank []Place          `json:"placeBank"`
	Plans     map[PlanKey]Plan `json:"plans"`
	Meta      AppMeta          `json:"meta"`
}

// Clone returns a deep copy of s; mutations work on clones only.
func (s AppState) Clone() AppState {
	c := AppState{Meta: s.Meta}
	if s.PlaceBank != nil {
		c.PlaceBank = make([]Place, len(s.PlaceBank))
		for i, place := range s.PlaceBank {
			c.PlaceBank[i] = place.Clone()
		}
	}
	if s.Plans != nil {
		c.Plans = make(map[PlanKey]Plan, len(s.Plans))
		for key, plan := range s.Plans {
			c.Plans[key] = plan.Clone()
		}
	}
	return c
}

// Place looks up a catalog record by id.
func (s AppState) Place(id string) (Place, bool) {
	for _, place := range s.PlaceBank {
		if place.ID == id {
			return place, true
		}
	}
	return Place{}, false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
