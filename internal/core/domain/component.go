package domain

type Device struct {
	Id           string
	Name         string
	Version      string
	Model        string
	Manufacturer string
	ViaDevice    string
}

type GenericSensor struct {
	Device            Device
	Id                string
	SensorType        string
	Name              string
	UniqueId          string
	UnitOfMeasurement string
	StateClass        string // measurement, total_increasing
	DeviceClass       string // temperature, energy, signal_strength, problem
	EntityCategory    string // diagnostic, config, nil
	EnabledByDefault  *bool
	Icon              string
}

type GenericClimate struct {
	Device     Device
	Id         string
	Name       string
	UniqueId   string
	Modes      []string
	FanModes   []string
	SwingModes []string
	MinTemp    float64
	MaxTemp    float64
	TempStep   float64
	Icon       string
}

type GenericFan struct {
	Device      Device
	Id          string
	Name        string
	UniqueId    string
	PresetModes []string
	SpeedCount  int
	Icon        string
}

type GenericSelect struct {
	Device   Device
	Id       string
	Name     string
	UniqueId string
	Options  []string
	Icon     string
}
