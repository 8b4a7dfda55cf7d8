package melcloud

// ATA operation modes as reported by the cloud.
const (
	AtaOperationModeHeat     = 1
	AtaOperationModeDry      = 2
	AtaOperationModeCool     = 3
	AtaOperationModeFanOnly  = 7
	AtaOperationModeHeatCool = 8
)

// Vane positions. 0 is automatic, 1..5 are fixed positions.
const (
	VanePositionAuto    = 0
	VanePositionSplit   = 8
	VaneVerticalSwing   = 7
	VaneHorizontalSwing = 12
)

// AtaDevice is an air-to-air heat pump.
type AtaDevice struct {
	Device
}

func (d *AtaDevice) OperationMode() int {
	if d.state == nil {
		return 0
	}
	return d.state.OperationMode
}

func (d *AtaDevice) TargetTemperature() float64 {
	if d.state == nil {
		return 0
	}
	return d.state.SetTemperature
}

// TargetTemperatureStep is the increment the unit accepts, 0.5 when the
// cloud does not report one.
func (d *AtaDevice) TargetTemperatureStep() float64 {
	if d.conf.Device.TemperatureIncrement > 0 {
		return d.conf.Device.TemperatureIncrement
	}
	return 0.5
}

// TargetTemperatureMin is the lowest settable temperature over the
// supported operation modes.
func (d *AtaDevice) TargetTemperatureMin() float64 {
	dev := &d.conf.Device
	min := 0.0
	first := true
	for _, v := range []float64{dev.MinTempHeat, dev.MinTempCoolDry, dev.MinTempAutomatic} {
		if v == 0 {
			continue
		}
		if first || v < min {
			min = v
			first = false
		}
	}
	if first {
		return 16
	}
	return min
}

func (d *AtaDevice) TargetTemperatureMax() float64 {
	dev := &d.conf.Device
	max := 0.0
	for _, v := range []float64{dev.MaxTempHeat, dev.MaxTempCoolDry, dev.MaxTempAutomatic} {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return 31
	}
	return max
}

// OperationModes lists the modes the unit supports.
func (d *AtaDevice) OperationModes() []int {
	dev := &d.conf.Device
	var modes []int
	if dev.ModelSupportsHeat {
		modes = append(modes, AtaOperationModeHeat)
	}
	if dev.ModelSupportsDry {
		modes = append(modes, AtaOperationModeDry)
	}
	if dev.ModelSupportsCool {
		modes = append(modes, AtaOperationModeCool)
	}
	modes = append(modes, AtaOperationModeFanOnly)
	if dev.ModelSupportsAuto {
		modes = append(modes, AtaOperationModeHeatCool)
	}
	return modes
}

func (d *AtaDevice) FanSpeed() int {
	if d.state == nil {
		return 0
	}
	return d.state.SetFanSpeed
}

func (d *AtaDevice) HasAutomaticFanSpeed() bool {
	return d.conf.Device.HasAutomaticFanSpeed
}

// FanSpeeds lists the settable speeds, 0 (automatic) first when supported.
func (d *AtaDevice) FanSpeeds() []int {
	var speeds []int
	if d.conf.Device.HasAutomaticFanSpeed {
		speeds = append(speeds, 0)
	}
	for i := 1; i <= d.conf.Device.NumberOfFanSpeeds; i++ {
		speeds = append(speeds, i)
	}
	return speeds
}

func (d *AtaDevice) VaneVertical() int {
	if d.state == nil {
		return 0
	}
	return d.state.VaneVertical
}

func (d *AtaDevice) VaneHorizontal() int {
	if d.state == nil {
		return 0
	}
	return d.state.VaneHorizontal
}

// VaneVerticalPositions lists the settable vertical positions.
func (d *AtaDevice) VaneVerticalPositions() []int {
	positions := []int{VanePositionAuto, 1, 2, 3, 4, 5}
	if d.conf.Device.SwingFunction {
		positions = append(positions, VaneVerticalSwing)
	}
	return positions
}

// VaneHorizontalPositions lists the settable horizontal positions.
func (d *AtaDevice) VaneHorizontalPositions() []int {
	positions := []int{VanePositionAuto, 1, 2, 3, 4, 5}
	if d.conf.Device.HasWideVane {
		positions = append(positions, VanePositionSplit)
	}
	if d.conf.Device.SwingFunction {
		positions = append(positions, VaneHorizontalSwing)
	}
	return positions
}

func (d *AtaDevice) HasWideVane() bool {
	return d.conf.Device.HasWideVane
}

func (d *AtaDevice) HasEnergyConsumedMeter() bool {
	return d.conf.Device.HasEnergyConsumedMeter
}

// TotalEnergyConsumed is the lifetime consumption in kWh.
func (d *AtaDevice) TotalEnergyConsumed() float64 {
	return d.conf.Device.TotalEnergyConsumed
}
