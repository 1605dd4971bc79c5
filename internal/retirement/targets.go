package retirement

import (
	"strings"
	"time"

	"github.com/louisbranch/personnel.dynamics/internal/core/target"
	"github.com/louisbranch/personnel.dynamics/internal/faction"
	"github.com/louisbranch/personnel.dynamics/internal/roster"
)

// Target number labels, in the order they are applied.
const (
	LabelFixed           = "Fixed Target"
	LabelSkillCheck      = "HR Skill Check"
	LabelFounder         = "Founder"
	LabelContract        = "Service Contract"
	LabelExperience      = "Experience"
	LabelFatigue         = "Fatigue"
	LabelAdminStrain     = "Administrative Strain"
	LabelManagement      = "Management Skill"
	LabelShares          = "Shares"
	LabelUnitRating      = "Unit Rating"
	LabelHostile         = "Hostile Territory"
	LabelMission         = "Mission Status"
	LabelLoyalty         = "Loyalty"
	LabelPirateCompany   = "Pirate Company"
	LabelComStar         = "ComStar"
	LabelFactionLoyalty  = "Faction Loyalty"
	LabelPirateOrigin    = "Pirate Origin"
	LabelMercenaryOrigin = "Mercenary Origin"
	LabelClanOrigin      = "Clan Origin"
	LabelWartime         = "Wartime"
	LabelAge             = "Age"
	LabelSpouse          = "Spouse"
	LabelChildren        = "Children"
	LabelInjuries        = "Injuries"
	LabelOfficer         = "Officer"
	LabelCompanyMan      = "Company Man"
)

// Management is the commander a group reports to and the modifier their
// leadership applies to the group's members.
type Management struct {
	CommanderID string
	Modifier    int
}

// ManagementModifier converts a leadership level into a target modifier.
// Strong leaders keep people; a missing skill counts as level zero.
func ManagementModifier(level int) int {
	return target.Clamp(2-max(level, 0), -3, 2)
}

// ManagementLookup finds the commander of every management group. With full
// management each profession group reports to its best leader; otherwise
// every group reports to the campaign commander.
func ManagementLookup(c roster.Campaign, full bool) map[roster.Group]Management {
	out := make(map[roster.Group]Management)
	if !full {
		var best *roster.Person
		for _, p := range roster.ActivePersonnel(c) {
			if !p.Commander || p.IsCivilian() {
				continue
			}
			if betterLeader(p, best) {
				best = p
			}
		}
		if best == nil {
			return out
		}
		m := Management{CommanderID: best.ID, Modifier: ManagementModifier(best.Skill(roster.SkillLeadership))}
		out[roster.GroupOther] = m
		for _, g := range allGroups {
			out[g] = m
		}
		return out
	}

	leaders := make(map[roster.Group]*roster.Person)
	for _, p := range roster.ActivePersonnel(c) {
		if p.IsCivilian() || p.Skill(roster.SkillLeadership) < 0 {
			continue
		}
		g := p.Profession.Group()
		if betterLeader(p, leaders[g]) {
			leaders[g] = p
		}
	}
	for g, p := range leaders {
		out[g] = Management{CommanderID: p.ID, Modifier: ManagementModifier(p.Skill(roster.SkillLeadership))}
	}
	return out
}

var allGroups = []roster.Group{
	roster.GroupMek, roster.GroupAero, roster.GroupVehicle, roster.GroupInfantry, roster.GroupVessel,
	roster.GroupTech, roster.GroupMedical, roster.GroupAdmin,
}

func betterLeader(p, current *roster.Person) bool {
	if current == nil {
		return true
	}
	if a, b := p.Skill(roster.SkillLeadership), current.Skill(roster.SkillLeadership); a != b {
		return a > b
	}
	if p.Officer != current.Officer {
		return p.Officer
	}
	return p.ID < current.ID
}

// ExperienceModifier is the desirability modifier of an experience tier:
// seasoned people have more offers elsewhere.
func ExperienceModifier(e roster.Experience) int {
	switch {
	case e <= roster.Green:
		return -1
	case e == roster.Regular:
		return 0
	case e == roster.Veteran:
		return 1
	default:
		return 2
	}
}

// AgeModifier is the age modifier. The young bonus always applies; the old
// penalty only applies to people not breaking a contract.
func AgeModifier(age int, contractBreaker bool) int {
	switch {
	case age < 20:
		return -1
	case contractBreaker:
		return 0
	case age >= 80:
		return 3
	case age >= 65:
		return 2
	case age >= 50:
		return 1
	default:
		return 0
	}
}

// MissionStatusModifier rewards finished contracts and punishes failures.
func MissionStatusModifier(status roster.MissionStatus) int {
	switch status {
	case roster.MissionSuccess:
		return -1
	case roster.MissionFailed:
		return 1
	case roster.MissionBreach:
		return 2
	default:
		return 0
	}
}

// campaignView is everything GetTargetNumbers derives once per call.
type campaignView struct {
	today       time.Time
	year        int
	own         faction.Faction
	ownKnown    bool
	contract    *roster.Mission
	sharePct    int
	hrPool      int
	adminStrain int
	management  map[roster.Group]Management
}

func (t *Tracker) view(mission *roster.Mission, c roster.Campaign) campaignView {
	o := t.opts
	v := campaignView{today: roster.Date(c.Today())}
	v.year = v.today.Year()
	if t.factions != nil {
		v.own, v.ownKnown = t.factions.Faction(c.FactionCode())
	}

	v.contract = mission
	for _, m := range roster.ActiveMissions(c) {
		if v.contract == nil {
			v.contract = m
		}
		if mission == nil && m.SharePercent > v.sharePct {
			v.sharePct = m.SharePercent
		}
	}
	if mission != nil {
		v.sharePct = mission.SharePercent
	}

	staff, load := 0, 0
	for _, p := range roster.ActivePersonnel(c) {
		if p.IsCivilian() {
			continue
		}
		load++
		if !p.Profession.IsAdmin() {
			continue
		}
		if level := p.Skill(roster.SkillAdministration); level > 0 {
			staff += level
			if p.Profession == roster.AdminHR {
				v.hrPool += level
			}
		}
	}
	if o.UseAdminStrain {
		if over := load - staff*o.AdminCapacity; over > 0 {
			v.adminStrain = (over + o.AdminCapacity - 1) / o.AdminCapacity
		}
	}
	if o.UseManagement {
		v.management = ManagementLookup(c, o.FullManagement)
	}
	return v
}

// eligible reports whether p rolls for departure at all.
func (t *Tracker) eligible(p *roster.Person, c roster.Campaign, today time.Time) bool {
	if !p.IsActive() || p.IsCivilian() || !p.IsFree() || p.Deployed {
		return false
	}
	if p.Founder && !t.opts.RandomFounderTurnover {
		if !t.opts.FounderRetirement || p.Age(today) < RetirementAge {
			return false
		}
	}
	if t.opts.SubcontractSoldiers && p.Profession.IsInfantry() && !commandsUnit(p, c) {
		return false
	}
	return true
}

func commandsUnit(p *roster.Person, c roster.Campaign) bool {
	if p.UnitID == "" {
		return false
	}
	u, ok := c.Unit(p.UnitID)
	return ok && u.CommanderID == p.ID
}

// GetTargetNumbers builds the departure target of every eligible person.
// It reads no tracker state: identical inputs give identical rolls.
func (t *Tracker) GetTargetNumbers(mission *roster.Mission, c roster.Campaign) map[string]target.Roll {
	v := t.view(mission, c)
	out := make(map[string]target.Roll)
	for _, p := range roster.ActivePersonnel(c) {
		if !t.eligible(p, c, v.today) {
			continue
		}
		out[p.ID] = t.targetFor(p, c, v)
	}
	return out
}

func (t *Tracker) targetFor(p *roster.Person, c roster.Campaign, v campaignView) target.Roll {
	o := t.opts
	loyaltyInBase := o.UseLoyalty && o.LoyaltyInBase

	var tn target.Roll
	if o.UseSkillBase {
		tn = target.New(o.ReferenceTarget-v.hrPool/o.HRPoolDivisor+o.Difficulty, LabelSkillCheck)
	} else {
		tn = target.New(o.fixedTarget(), LabelFixed)
	}
	if loyaltyInBase {
		tn.Base -= p.Loyalty
	}

	if p.Founder {
		tn.Add(-2, LabelFounder)
	}
	breaker := o.IsContractBreaker(p, v.today)
	if breaker {
		tn.Add(-1, LabelContract)
	}
	if o.UseExperience {
		tn.AddNonZero(ExperienceModifier(p.Experience), LabelExperience)
	}
	if o.UseFatigue {
		lo, hi := o.fatigueBand()
		tn.AddNonZero(target.Clamp(p.Fatigue/o.FatigueDivisor, lo, hi), LabelFatigue)
	}
	if o.UseAdminStrain {
		tn.AddNonZero(v.adminStrain, LabelAdminStrain)
	}
	if o.UseManagement {
		if m, ok := v.management[p.Profession.Group()]; ok && m.CommanderID != p.ID {
			tn.AddNonZero(m.Modifier, LabelManagement)
		}
	}
	if o.UseShares {
		tn.AddNonZero(-max(0, v.sharePct/10-o.ShareOffset), LabelShares)
	}
	if o.UseUnitRating {
		tn.AddNonZero(-c.UnitRatingModifier(), LabelUnitRating)
	}
	if o.UseHostile && v.contract != nil && v.contract.HostileTerritory {
		tn.Add(1, LabelHostile)
	}
	if o.UseMissionStatus && v.contract != nil {
		tn.AddNonZero(MissionStatusModifier(v.contract.Status), LabelMission)
	}
	if o.UseLoyalty && !loyaltyInBase {
		tn.AddNonZero(-p.Loyalty, LabelLoyalty)
	}
	if o.UseFactionModifiers {
		t.addFactionModifiers(&tn, p, v)
	}
	if o.UseAge {
		tn.AddNonZero(AgeModifier(p.Age(v.today), breaker), LabelAge)
	}
	if o.UseFamily {
		if spouse, ok := c.Person(p.SpouseID); p.SpouseID != "" && ok && spouse.IsActive() {
			tn.Add(-1, LabelSpouse)
		}
		for _, childID := range p.ChildIDs {
			if child, ok := c.Person(childID); ok && child.IsActive() {
				tn.Add(-1, LabelChildren)
				break
			}
		}
	}
	if o.UseInjuries {
		tn.AddNonZero(p.PermanentInjuries, LabelInjuries)
	}
	if o.UseOfficer {
		switch {
		case p.Officer:
			tn.Add(-1, LabelOfficer)
		case p.HasAbility(roster.AbilityCompanyMan):
			tn.Add(-1, LabelCompanyMan)
		}
	}
	return tn
}

func (t *Tracker) addFactionModifiers(tn *target.Roll, p *roster.Person, v campaignView) {
	if !v.ownKnown {
		return
	}
	own := v.own
	if own.Pirate {
		tn.Add(1, LabelPirateCompany)
	}
	if own.ComStar {
		tn.Add(-1, LabelComStar)
	}
	origin := strings.TrimSpace(p.OriginFaction)
	if origin == "" {
		return
	}
	if origin == own.Code {
		tn.Add(-1, LabelFactionLoyalty)
		return
	}
	f, ok := t.factions.Faction(origin)
	if !ok {
		return
	}
	if f.Pirate {
		tn.Add(1, LabelPirateOrigin)
	}
	if f.Mercenary {
		tn.Add(1, LabelMercenaryOrigin)
	}
	if f.Clan && !own.Clan {
		tn.Add(1, LabelClanOrigin)
	}
	if t.factions.AtWar(own.Code, origin, v.year) {
		tn.Add(1, LabelWartime)
	}
}
