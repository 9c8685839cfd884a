package main

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	SoilGridsURL string
	// Upstream land-cover endpoint relayed on /landcover; empty disables the route.
	LandCoverUpstreamURL string
	// 0 = no upstream timeout
	TimeoutMs int
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
		Port:                 getenv("PORT", "5000"),
		SoilGridsURL:         getenv("SOILGRIDS_URL", "https://rest.isric.org"),
		LandCoverUpstreamURL: getenv("LANDCOVER_UPSTREAM_URL", ""),
		TimeoutMs:            getenvInt("UPSTREAM_TIMEOUT_MS", 0),
	}
}
