package entities

// WeatherSnapshot is the current-conditions block of an Open-Meteo forecast.
type WeatherSnapshot struct {
	Temperature   float64 `json:"temperature"`   // °C
	WindSpeed     float64 `json:"windspeed"`     // km/h
	WindDirection float64 `json:"winddirection"` // degrees
}
