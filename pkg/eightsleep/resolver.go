package eightsleep

// Side selects which part of the status document an attribute is read from.
// left and right are the per-side sub-documents, hub is the document root.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideHub   Side = "hub"
)

func Sides() []Side {
	return []Side{SideLeft, SideRight, SideHub}
}

type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
)

// Attribute maps a logical attribute id to its JSON key and value kind.
// StringBool marks fields the controller encodes as the literal text
// "true"/"false" instead of a native boolean (a device quirk downstream
// consumers rely on, so the coercion is kept as-is).
type Attribute struct {
	ID          string
	Name        string
	JSONKey     string
	Kind        Kind
	StringBool  bool
	Unit        string
	DeviceClass string
}

func (a Attribute) defaultValue() any {
	switch a.Kind {
	case KindNumber:
		return float64(0)
	case KindBool:
		return false
	default:
		return ""
	}
}

var sideAttributes = []Attribute{
	{ID: "current_temp_f", Name: "Current Temperature (F)", JSONKey: "currentTemperatureF", Kind: KindNumber, Unit: "°F", DeviceClass: "temperature"},
	{ID: "target_temp_f", Name: "Target Temperature (F)", JSONKey: "targetTemperatureF", Kind: KindNumber, Unit: "°F", DeviceClass: "temperature"},
	{ID: "seconds_remaining", Name: "Seconds Remaining", JSONKey: "secondsRemaining", Kind: KindNumber, Unit: "s"},
	{ID: "is_alarm_vibrating", Name: "Alarm Vibrating", JSONKey: "isAlarmVibrating", Kind: KindBool},
	{ID: "is_on", Name: "Device On", JSONKey: "isOn", Kind: KindBool},
}

var hubAttributes = []Attribute{
	{ID: "is_priming", Name: "Is Priming", JSONKey: "isPriming", Kind: KindBool},
	{ID: "water_level", Name: "Water Level", JSONKey: "waterLevel", Kind: KindBool, StringBool: true},
	{ID: "sensor_label", Name: "Sensor Label", JSONKey: "sensorLabel", Kind: KindString},
}

// Attributes returns the descriptor table for a side, in stable order.
func Attributes(side Side) []Attribute {
	switch side {
	case SideLeft, SideRight:
		return sideAttributes
	case SideHub:
		return hubAttributes
	default:
		return nil
	}
}

// LookupAttribute finds a descriptor by (side, attribute id).
func LookupAttribute(side Side, attributeID string) (Attribute, bool) {
	for _, attr := range Attributes(side) {
		if attr.ID == attributeID {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Resolve projects a snapshot into one named reading. A missing side,
// missing key, malformed value or unknown attribute id yields the kind's
// default (0/false/"") rather than an error: a transient partial snapshot
// must not stop consumers from showing last-known or default state.
func Resolve(side Side, attributeID string, snap Snapshot) any {
	attr, ok := LookupAttribute(side, attributeID)
	if !ok {
		// unknown id for this side: fall back to the kind declared on
		// any other side so the default is still typed
		for _, s := range Sides() {
			if a, found := LookupAttribute(s, attributeID); found {
				return a.defaultValue()
			}
		}
		return nil
	}

	container := snap.Data
	if side == SideLeft || side == SideRight {
		sub, _ := snap.Data[string(side)].(map[string]any)
		container = sub
	}
	raw, ok := container[attr.JSONKey]
	if !ok {
		return attr.defaultValue()
	}

	if attr.StringBool {
		s, _ := raw.(string)
		return s == "true"
	}
	switch attr.Kind {
	case KindNumber:
		f, ok := raw.(float64)
		if !ok {
			return attr.defaultValue()
		}
		return f
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return attr.defaultValue()
		}
		return b
	default:
		s, ok := raw.(string)
		if !ok {
			return attr.defaultValue()
		}
		return s
	}
}

// ResolveNumber is Resolve with the numeric kind asserted.
func ResolveNumber(side Side, attributeID string, snap Snapshot) float64 {
	f, _ := Resolve(side, attributeID, snap).(float64)
	return f
}

// ResolveBool is Resolve with the boolean kind asserted.
func ResolveBool(side Side, attributeID string, snap Snapshot) bool {
	b, _ := Resolve(side, attributeID, snap).(bool)
	return b
}

// ResolveString is Resolve with the string kind asserted.
func ResolveString(side Side, attributeID string, snap Snapshot) string {
	s, _ := Resolve(side, attributeID, snap).(string)
	return s
}
