package melcloud

// ERV ventilation modes.
const (
	VentilationModeRecovery = 0
	VentilationModeBypass   = 1
	VentilationModeAuto     = 2
)

// ErvDevice is an energy recovery ventilator.
type ErvDevice struct {
	Device
}

func (d *ErvDevice) FanSpeed() int {
	if d.state == nil {
		return 0
	}
	return d.state.SetFanSpeed
}

// FanSpeeds lists the settable speeds, 1..NumberOfFanSpeeds.
func (d *ErvDevice) FanSpeeds() []int {
	var speeds []int
	for i := 1; i <= d.conf.Device.NumberOfFanSpeeds; i++ {
		speeds = append(speeds, i)
	}
	return speeds
}

func (d *ErvDevice) VentilationMode() int {
	if d.state == nil {
		return d.conf.Device.VentilationMode
	}
	return d.state.VentilationMode
}

// ActualVentilationMode is the mode the unit runs in, which can differ from
// the setting when automatic mode is selected.
func (d *ErvDevice) ActualVentilationMode() int {
	return d.conf.Device.ActualVentilationMode
}

func (d *ErvDevice) ActualSupplyFanSpeed() int {
	return d.conf.Device.ActualSupplyFanSpeed
}

func (d *ErvDevice) ActualExhaustFanSpeed() int {
	return d.conf.Device.ActualExhaustFanSpeed
}

func (d *ErvDevice) OutdoorTemperature() float64 {
	return d.conf.Device.OutdoorTemperature
}

func (d *ErvDevice) HasEnergyConsumedMeter() bool {
	return d.conf.Device.HasEnergyConsumedMeter
}

// TotalEnergyConsumed is the lifetime consumption in kWh.
func (d *ErvDevice) TotalEnergyConsumed() float64 {
	return d.conf.Device.TotalEnergyConsumed
}

func (d *ErvDevice) CoreMaintenanceRequired() bool {
	return d.conf.Device.CoreMaintenanceRequired
}

func (d *ErvDevice) FilterMaintenanceRequired() bool {
	return d.conf.Device.FilterMaintenanceRequired
}
