package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	WeatherURL      string
	SoilSource      string
	SoilProxyURL    string
	SoilGridsURL    string
	LandCoverSource string
	LandCoverURL    string
	// 0 = no timeout
	TimeoutMs int

	// Position used when the browser sends none; empty disables the fallback.
	FieldLat string
	FieldLon string

	// Optional report sink; empty host disables publishing.
	MQTTHost     string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTClientID string
	MQTTTopic    string
	// Identical reports within this window are published once; 0 disables.
	ReportDedupSeconds int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		WeatherURL:      getenv("WEATHER_URL", "https://api.open-meteo.com"),
		SoilSource:      getenv("SOIL_SOURCE", "mock"),
		SoilProxyURL:    getenv("SOIL_PROXY_URL", "http://localhost:5000"),
		SoilGridsURL:    getenv("SOILGRIDS_URL", "https://rest.isric.org"),
		LandCoverSource: getenv("LANDCOVER_SOURCE", "mock"),
		LandCoverURL:    getenv("LANDCOVER_URL", ""),
		TimeoutMs:       getenvInt("UPSTREAM_TIMEOUT_MS", 0),
		FieldLat:        getenv("FIELD_LAT", ""),
		FieldLon:        getenv("FIELD_LON", ""),
		MQTTHost:        getenv("MQTT_HOST", ""),
		MQTTPort:        getenvInt("MQTT_PORT", 1883),
		MQTTUser:        getenv("MQTT_USER", "guest"),
		MQTTPassword:    getenv("MQTT_PASSWORD", "guest"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "field-dashboard"),
		MQTTTopic:       getenv("MQTT_TOPIC", "field/report"),

		ReportDedupSeconds: getenvInt("REPORT_DEDUP_SECONDS", 300),
	}
}
