package seeder

import (
	"sort"

	"github.com/brianvoe/gofakeit/v6"
)

// A scenario produces a free-text logistics event description in the shape
// an operator would type into the oracle.
type scenario func() string

var scenarios = map[string]scenario{
	"delay": func() string {
		return gofakeit.RandomString([]string{
			"Truck", "Container ship", "Freight train", "Cargo flight",
		}) + " carrying " + gofakeit.ProductName() + " delayed " +
			gofakeit.RandomString([]string{"2 hours", "6 hours", "a full day"}) +
			" near " + gofakeit.City() + " due to " +
			gofakeit.RandomString([]string{"severe weather", "port congestion", "a mechanical failure", "road closure"})
	},
	"damage": func() string {
		return "Inspection at " + gofakeit.City() + " found " +
			gofakeit.RandomString([]string{"a broken container seal", "water damage on pallets", "crushed packaging", "a punctured crate"}) +
			" affecting goods from " + gofakeit.Company()
	},
	"customs_hold": func() string {
		return "Customs hold at " + gofakeit.City() + " port: " +
			gofakeit.RandomString([]string{"missing certificate of origin", "incomplete manifest", "random inspection", "tariff reclassification"}) +
			", estimated clearance in " + gofakeit.RandomString([]string{"24 hours", "48 hours", "3 business days"})
	},
	"temperature": func() string {
		return "Reefer unit for " + gofakeit.ProductName() + " logged " +
			gofakeit.RandomString([]string{"a 4 degree excursion", "a sensor fault", "a compressor alarm"}) +
			" for " + gofakeit.RandomString([]string{"20 minutes", "2 hours", "an unknown duration"}) +
			" en route to " + gofakeit.City()
	},
	"reroute": func() string {
		return "Shipment rerouted through " + gofakeit.City() + " after " +
			gofakeit.RandomString([]string{"a canal closure", "carrier overbooking", "a strike at the origin port"})
	},
	"delivered": func() string {
		return "Shipment delivered to " + gofakeit.Company() + " warehouse in " +
			gofakeit.City() + ", signed for by " + gofakeit.Name()
	},
}

// ScenarioNames lists built-in scenarios in stable order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateEvent produces one event description for the named scenario.
// Unknown names fall back to "delay".
func GenerateEvent(name string) string {
	gen, ok := scenarios[name]
	if !ok {
		gen = scenarios["delay"]
	}
	return gen()
}
