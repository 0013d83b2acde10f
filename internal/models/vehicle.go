package models

// Vehicle status constants
const (
	VehicleStatusAvailable = "Available"
	VehicleStatusReserved  = "Reserved"
	VehicleStatusSold      = "Sold"
)

// Engine type constants
const (
	EngineGasoline = "Gasoline"
	EngineDiesel   = "Diesel"
	EngineElectric = "Electric"
	EngineHybrid   = "Hybrid"
)

// Transmission type constants
const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"
	TransmissionCVT       = "CVT"
)

// Body type constants
const (
	BodySedan       = "Sedan"
	BodyHatchback   = "Hatchback"
	BodyWagon       = "Wagon"
	BodyCrossover   = "Crossover"
	BodySUV         = "SUV"
	BodyCoupe       = "Coupe"
	BodyConvertible = "Convertible"
)

// VehiclePhoto is one image attached to a listing
type VehiclePhoto struct {
	URL          string `json:"url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// Vehicle represents a single marketplace listing.
// Listings are supplied by the vehicle repository and treated as
// immutable input by the catalog engine.
type Vehicle struct {
	ID                string         `json:"id"`
	VIN               string         `json:"vin"`
	Manufacturer      string         `json:"manufacturer"`
	Model             string         `json:"model"`
	Year              int            `json:"year"`
	Mileage           int            `json:"mileage"`
	Color             string         `json:"color"`
	EngineVolume      float64        `json:"engine_volume"`
	Power             int            `json:"power"`
	Description       string         `json:"description"`
	BodyType          string         `json:"body_type"`
	EngineType        string         `json:"engine_type"`
	TransmissionType  string         `json:"transmission_type"`
	BasePriceAmount   float64        `json:"base_price_amount"`
	BasePriceCurrency string         `json:"base_price_currency"`
	Status            string         `json:"status"`
	Photos            []VehiclePhoto `json:"photos,omitempty"`
	Features          []string       `json:"features,omitempty"`
}

// IsValidVehicleStatus checks if the vehicle status is valid
func IsValidVehicleStatus(status string) bool {
	switch status {
	case VehicleStatusAvailable, VehicleStatusReserved, VehicleStatusSold:
		return true
	default:
		return false
	}
}

// IsValidEngineType checks if the engine type is valid
func IsValidEngineType(engineType string) bool {
	switch engineType {
	case EngineGasoline, EngineDiesel, EngineElectric, EngineHybrid:
		return true
	default:
		return false
	}
}

// IsValidTransmissionType checks if the transmission type is valid
func IsValidTransmissionType(transmission string) bool {
	switch transmission {
	case TransmissionAutomatic, TransmissionManual, TransmissionCVT:
		return true
	default:
		return false
	}
}

// IsValidBodyType checks if the body type is valid
func IsValidBodyType(bodyType string) bool {
	switch bodyType {
	case BodySedan, BodyHatchback, BodyWagon, BodyCrossover, BodySUV, BodyCoupe, BodyConvertible:
		return true
	default:
		return false
	}
}
