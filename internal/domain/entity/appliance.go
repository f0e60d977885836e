// Package entity contains the core business objects of the project.
package entity

// ApplianceType enumerates the kinds of household appliances the platform
// services.
type ApplianceType string

const (
	ApplianceRefrigerator   ApplianceType = "refrigerator"
	ApplianceWashingMachine ApplianceType = "washing_machine"
	ApplianceAirConditioner ApplianceType = "air_conditioner"
	ApplianceTelevision     ApplianceType = "television"
	ApplianceMicrowave      ApplianceType = "microwave"
	ApplianceOven           ApplianceType = "oven"
	ApplianceDishwasher     ApplianceType = "dishwasher"
	ApplianceOther          ApplianceType = "other"
)

// String returns the string representation of the ApplianceType.
func (a ApplianceType) String() string {
	return string(a)
}

// IsValid checks if the ApplianceType is a valid value.
func (a ApplianceType) IsValid() bool {
	switch a {
	case ApplianceRefrigerator, ApplianceWashingMachine, ApplianceAirConditioner,
		ApplianceTelevision, ApplianceMicrowave, ApplianceOven,
		ApplianceDishwasher, ApplianceOther:
		return true
	default:
		return false
	}
}
