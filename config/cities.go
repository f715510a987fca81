package config

// City represents a city configuration
type City struct {
	Name      string    `json:"name"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
}

// SupportedCities seeds the search type-ahead when the properties table has
// no cities of its own yet.
var SupportedCities = []City{
	{
		Name:      "amsterdam",
		Center:    []float64{52.3676, 4.9041},
		ZoomLevel: 13,
	},
	{
		Name:      "rotterdam",
		Center:    []float64{51.9244, 4.4777},
		ZoomLevel: 13,
	},
	{
		Name:      "utrecht",
		Center:    []float64{52.0907, 5.1214},
		ZoomLevel: 13,
	},
	{
		Name:      "the hague",
		Center:    []float64{52.0705, 4.3007},
		ZoomLevel: 13,
	},
	{
		Name:      "eindhoven",
		Center:    []float64{51.4416, 5.4697},
		ZoomLevel: 13,
	},
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name
func GetCityByName(name string) *City {
	for _, city := range SupportedCities {
		if city.Name == name {
			return &city
		}
	}
	return nil
}
