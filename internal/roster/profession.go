package roster

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Profession identifies a personnel role. Rule tables may name professions
// this package does not know; those fall into GroupOther.
type Profession string

const (
	MekWarrior        Profession = "mekwarrior"
	AerospacePilot    Profession = "aerospace_pilot"
	VehicleDriver     Profession = "vehicle_driver"
	VehicleGunner     Profession = "vehicle_gunner"
	ConventionalPilot Profession = "conventional_pilot"
	ProtoMekPilot     Profession = "protomek_pilot"
	BattleArmour      Profession = "battle_armour"
	Soldier           Profession = "soldier"
	VesselPilot       Profession = "vessel_pilot"
	VesselCrew        Profession = "vessel_crew"
	Navigator         Profession = "navigator"
	MekTech           Profession = "mek_tech"
	Mechanic          Profession = "mechanic"
	AeroTech          Profession = "aero_tech"
	BATech            Profession = "ba_tech"
	Astech            Profession = "astech"
	Doctor            Profession = "doctor"
	Medic             Profession = "medic"
	AdminCommand      Profession = "admin_command"
	AdminLogistics    Profession = "admin_logistics"
	AdminTransport    Profession = "admin_transport"
	AdminHR           Profession = "admin_hr"
	Dependent         Profession = "dependent"
	ProfessionNone    Profession = "none"
)

// Group is the management group a profession reports through. Each group
// has at most one commander whose leadership affects its members.
type Group string

const (
	GroupMek      Group = "mek"
	GroupAero     Group = "aero"
	GroupVehicle  Group = "vehicle"
	GroupInfantry Group = "infantry"
	GroupVessel   Group = "vessel"
	GroupTech     Group = "tech"
	GroupMedical  Group = "medical"
	GroupAdmin    Group = "admin"
	GroupCivilian Group = "civilian"
	GroupOther    Group = "other"
)

var professionGroups = map[Profession]Group{
	MekWarrior:        GroupMek,
	ProtoMekPilot:     GroupMek,
	AerospacePilot:    GroupAero,
	ConventionalPilot: GroupAero,
	VehicleDriver:     GroupVehicle,
	VehicleGunner:     GroupVehicle,
	BattleArmour:      GroupInfantry,
	Soldier:           GroupInfantry,
	VesselPilot:       GroupVessel,
	VesselCrew:        GroupVessel,
	Navigator:         GroupVessel,
	MekTech:           GroupTech,
	Mechanic:          GroupTech,
	AeroTech:          GroupTech,
	BATech:            GroupTech,
	Astech:            GroupTech,
	Doctor:            GroupMedical,
	Medic:             GroupMedical,
	AdminCommand:      GroupAdmin,
	AdminLogistics:    GroupAdmin,
	AdminTransport:    GroupAdmin,
	AdminHR:           GroupAdmin,
	Dependent:         GroupCivilian,
	ProfessionNone:    GroupCivilian,
}

// Normalize lower-cases and trims a profession identifier.
func (p Profession) Normalize() Profession {
	return Profession(strings.ToLower(strings.TrimSpace(string(p))))
}

// Group returns the management group of the profession.
func (p Profession) Group() Group {
	if g, ok := professionGroups[p.Normalize()]; ok {
		return g
	}
	return GroupOther
}

// IsCivilian reports whether the profession is a non-combatant dependent.
func (p Profession) IsCivilian() bool {
	return p.Group() == GroupCivilian
}

// IsCockpit reports whether the profession sits in a single-unit cockpit or
// aerospace seat and may have brought a unit with them.
func (p Profession) IsCockpit() bool {
	switch p.Normalize() {
	case MekWarrior, AerospacePilot, VehicleDriver, ConventionalPilot, ProtoMekPilot:
		return true
	default:
		return false
	}
}

// IsInfantry reports whether the profession serves in an infantry unit.
func (p Profession) IsInfantry() bool {
	return p.Group() == GroupInfantry
}

// IsAdmin reports whether the profession is administrative staff.
func (p Profession) IsAdmin() bool {
	return p.Group() == GroupAdmin
}

var baseSalaries = map[Profession]int64{
	MekWarrior:        1500,
	AerospacePilot:    1500,
	VehicleDriver:     900,
	VehicleGunner:     900,
	ConventionalPilot: 900,
	ProtoMekPilot:     960,
	BattleArmour:      960,
	Soldier:           750,
	VesselPilot:       1000,
	VesselCrew:        500,
	Navigator:         1000,
	MekTech:           800,
	Mechanic:          640,
	AeroTech:          800,
	BATech:            800,
	Astech:            400,
	Doctor:            1500,
	Medic:             400,
	AdminCommand:      500,
	AdminLogistics:    500,
	AdminTransport:    500,
	AdminHR:           500,
}

// BaseSalary returns the monthly base salary of a Regular in the profession.
// Civilians draw no salary and unknown professions draw the soldier rate.
func (p Profession) BaseSalary() decimal.Decimal {
	if p.IsCivilian() {
		return decimal.Zero
	}
	if amount, ok := baseSalaries[p.Normalize()]; ok {
		return decimal.NewFromInt(amount)
	}
	return decimal.NewFromInt(baseSalaries[Soldier])
}
