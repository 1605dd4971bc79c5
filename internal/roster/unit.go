package roster

// UnitKind is the kind of force a unit fields.
type UnitKind string

const (
	UnitMek          UnitKind = "mek"
	UnitVehicle      UnitKind = "vehicle"
	UnitAero         UnitKind = "aero"
	UnitInfantry     UnitKind = "infantry"
	UnitBattleArmour UnitKind = "battle_armour"
	UnitVessel       UnitKind = "vessel"
)

// Unit is one crewed unit and the people assigned to it.
type Unit struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Kind        UnitKind `json:"kind" yaml:"kind"`
	CommanderID string   `json:"commander_id" yaml:"commander_id"`
	MemberIDs   []string `json:"member_ids" yaml:"member_ids"`
}

// IsInfantry reports whether the unit is conventional or battle-armoured
// infantry.
func (u *Unit) IsInfantry() bool {
	return u != nil && (u.Kind == UnitInfantry || u.Kind == UnitBattleArmour)
}

