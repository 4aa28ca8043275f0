package vesync

// Family is the coarse capability grouping of a device.
// Outlets report energy data, wall switches do not, and the
// air purifier speaks a different protocol family entirely.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyOutlet
	FamilySwitch
	FamilyPurifier
)

func (f Family) String() string {
	switch f {
	case FamilyOutlet:
		return "outlet"
	case FamilySwitch:
		return "switch"
	case FamilyPurifier:
		return "purifier"
	}
	return "unknown"
}

// Dialect selects the endpoint set, body shape and key field used by
// one hardware generation's API.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectOutlet7A        // round 7A outlet, the original hardware
	DialectOutlet15A       // rectangular 15A outlet with nightlight
	DialectOutlet10A       // round 10A outlet, EU plug
	DialectInWallSwitch    // in-wall light switch, no energy data
	DialectPurifier131     // Levoit LV-PUR131S air purifier
)

func (d Dialect) String() string {
	switch d {
	case DialectOutlet7A:
		return "7A"
	case DialectOutlet15A:
		return "15A"
	case DialectOutlet10A:
		return "10A"
	case DialectInWallSwitch:
		return "inwallswitch"
	case DialectPurifier131:
		return "131airPurifier"
	}
	return "unknown"
}

// deviceType codes as reported in the deviceManaged listing
const (
	typeOutlet7A  = "wifi-switch-1.3"
	typeOutlet15A = "ESW15-USA"
	typeOutlet10A = "ESW01-EU"
	typeSwitch1   = "ESWL01"
	typeSwitch3   = "ESWL02" // three-way
	typeAir131    = "LV-PUR131S"
)

var deviceTypes = map[string]Dialect{
	typeOutlet7A:  DialectOutlet7A,
	typeOutlet15A: DialectOutlet15A,
	typeOutlet10A: DialectOutlet10A,
	typeSwitch1:   DialectInWallSwitch,
	typeSwitch3:   DialectInWallSwitch,
	typeAir131:    DialectPurifier131,
}

// Classify maps a raw deviceType code to its family and API dialect.
// Unrecognized codes return ok == false and the caller must leave the
// device out of the registry; there is no safe default dialect.
func Classify(deviceType string) (Family, Dialect, bool) {
	dialect, ok := deviceTypes[deviceType]
	if !ok {
		return FamilyUnknown, DialectUnknown, false
	}
	return profiles[dialect].family, dialect, true
}

// usesUUID reports whether a dialect addresses devices by uuid
// rather than cid.
func (d Dialect) usesUUID() bool {
	return profiles[d].uuidKey
}

// hasEnergy reports whether a dialect can answer energy queries.
func (d Dialect) hasEnergy() bool {
	return profiles[d].energyPath != ""
}
