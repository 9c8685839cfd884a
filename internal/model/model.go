package model

import (
	"github.com/bhavyp2311/Weather-Api/internal/model/entities"
	"github.com/bhavyp2311/Weather-Api/internal/model/messages"
)

// Aliases exposing the shared types to the services

type (
	Coordinate      = entities.Coordinate
	WeatherSnapshot = entities.WeatherSnapshot
	SoilProperties  = entities.SoilProperties
	SoilLayer       = entities.SoilLayer
	SoilDepth       = entities.SoilDepth
	SoilValues      = entities.SoilValues
	LandCoverInfo   = entities.LandCoverInfo
	FieldReport     = messages.FieldReport
)

// Soil property names requested from SoilGrids.
const (
	PropertyPH         = "phh2o"
	PropertyNitrogen   = "nitrogen"
	PropertyPhosphorus = "phosphorus"
	PropertyPotassium  = "potassium"
)

// SoilPropertyNames lists the properties in the order SoilGrids is queried with.
var SoilPropertyNames = []string{PropertyPH, PropertyNitrogen, PropertyPhosphorus, PropertyPotassium}

// SoilDepthBand is the only depth band queried.
const SoilDepthBand = "0-5cm"
