package roster

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/louisbranch/personnel.dynamics/internal/faction"
	apperrors "github.com/louisbranch/personnel.dynamics/internal/platform/errors"
	"github.com/louisbranch/personnel.dynamics/internal/random"
)

func TestDateHelpers(t *testing.T) {
	start := MustParseDate("3040-03-15")
	tests := []struct {
		end        string
		wantMonths int
		wantYears  int
	}{
		{"3040-03-15", 0, 0},
		{"3040-04-14", 0, 0},
		{"3040-04-15", 1, 0},
		{"3041-03-14", 11, 0},
		{"3041-03-15", 12, 1},
		{"3039-01-01", 0, 0},
	}
	for _, tt := range tests {
		end := MustParseDate(tt.end)
		if got := MonthsBetween(start, end); got != tt.wantMonths {
			t.Fatalf("MonthsBetween(%s) = %d, want %d", tt.end, got, tt.wantMonths)
		}
		if got := YearsBetween(start, end); got != tt.wantYears {
			t.Fatalf("YearsBetween(%s) = %d, want %d", tt.end, got, tt.wantYears)
		}
	}

	if got := DaysInMonth(MustParseDate("3052-02-10")); got != 29 {
		t.Fatalf("days in leap February = %d, want 29", got)
	}
	if got := DaysInMonth(MustParseDate("3051-02-10")); got != 28 {
		t.Fatalf("days in February = %d, want 28", got)
	}
	if got := DaysInMonth(MustParseDate("3050-12-31")); got != 31 {
		t.Fatalf("days in December = %d, want 31", got)
	}
}

func TestProfessionGroups(t *testing.T) {
	if !Dependent.IsCivilian() {
		t.Fatal("expected dependent to be civilian")
	}
	if MekWarrior.IsCivilian() {
		t.Fatal("expected mekwarrior to be a combatant")
	}
	if !Profession(" MekWarrior ").IsCockpit() {
		t.Fatal("expected normalized mekwarrior to be a cockpit role")
	}
	if Soldier.IsCockpit() || !Soldier.IsInfantry() {
		t.Fatal("expected soldier to be infantry without a cockpit")
	}
	if got := Profession("scout").Group(); got != GroupOther {
		t.Fatalf("group = %q, want %q", got, GroupOther)
	}
	if !Dependent.BaseSalary().IsZero() {
		t.Fatalf("dependent salary = %s, want 0", Dependent.BaseSalary())
	}
	if got := SalaryFor(MekWarrior, Veteran).String(); got != "2400" {
		t.Fatalf("veteran mekwarrior salary = %s, want 2400", got)
	}
}

func TestPersonQueries(t *testing.T) {
	p := &Person{
		Status:    StatusActive,
		Birthday:  MustParseDate("3000-06-01"),
		Recruited: MustParseDate("3045-01-01"),
		Skills:    map[string]int{SkillLeadership: 4},
		Abilities: []string{"Company_Man"},
	}
	today := MustParseDate("3050-05-31")
	if got := p.Age(today); got != 49 {
		t.Fatalf("age = %d, want 49", got)
	}
	if got := p.YearsInService(today); got != 5 {
		t.Fatalf("years in service = %d, want 5", got)
	}
	if got := p.Skill("Leadership"); got != 4 {
		t.Fatalf("leadership = %d, want 4", got)
	}
	if got := p.Skill(SkillAdministration); got != -1 {
		t.Fatalf("missing skill = %d, want -1", got)
	}
	if !p.HasAbility(AbilityCompanyMan) {
		t.Fatal("expected company man ability")
	}
	if !p.IsFree() {
		t.Fatal("expected empty bondage to count as free")
	}

	clone := p.Clone()
	clone.Skills[SkillLeadership] = 1
	if p.Skill(SkillLeadership) != 4 {
		t.Fatal("clone shares skills map with original")
	}
}

func TestMemoryMutations(t *testing.T) {
	m := NewMemory(MustParseDate("3050-01-01"), "FS", Location{SystemID: "robinson"})
	a := &Person{ID: "a", Status: StatusActive, UnitID: "u1", Commander: true}
	b := &Person{ID: "b", Status: StatusActive, UnitID: "u1"}
	if !m.AddPerson(a) || !m.AddPerson(b) {
		t.Fatal("expected people to be added")
	}
	if m.AddPerson(&Person{ID: "a"}) {
		t.Fatal("expected duplicate id to be rejected")
	}
	m.PutUnit(&Unit{ID: "u1", Kind: UnitInfantry, CommanderID: "a", MemberIDs: []string{"a", "b"}})

	if !m.ChangeStatus("a", StatusRetired) {
		t.Fatal("expected status change")
	}
	u, _ := m.Unit("u1")
	if u.CommanderID != "" || slices.Contains(u.MemberIDs, "a") {
		t.Fatalf("unit after departure = %+v, want commander cleared", u)
	}
	if got := len(ActivePersonnel(m)); got != 1 {
		t.Fatalf("active personnel = %d, want 1", got)
	}

	if !m.RemovePerson("b") {
		t.Fatal("expected removal")
	}
	if _, ok := m.Person("b"); ok {
		t.Fatal("expected person b to be gone")
	}
	if len(u.MemberIDs) != 0 {
		t.Fatalf("unit members = %v, want none", u.MemberIDs)
	}

	m.PutMission(&Mission{ID: "m1", Kind: MissionRaid})
	m.PutMission(&Mission{ID: "m1", Kind: MissionGarrison})
	if got := len(m.Missions()); got != 1 {
		t.Fatalf("missions = %d, want 1", got)
	}
	if got := len(ActiveMissions(m)); got != 1 {
		t.Fatalf("active missions = %d, want 1", got)
	}

	m.Advance(31)
	if got := m.Today(); !got.Equal(MustParseDate("3050-02-01")) {
		t.Fatalf("today = %s, want 3050-02-01", got.Format(time.DateOnly))
	}
}

func TestFactoryIsDeterministic(t *testing.T) {
	registry := faction.NewStatic([]faction.Faction{{Code: "FS"}}, nil, nil, nil)
	today := func() time.Time { return MustParseDate("3050-01-01") }

	first, err := NewFactory(random.NewSeeded(7), registry, today).NewPerson(MekWarrior, "FS", GenderRandom)
	if err != nil {
		t.Fatalf("new person: %v", err)
	}
	second, err := NewFactory(random.NewSeeded(7), registry, today).NewPerson(MekWarrior, "FS", GenderRandom)
	if err != nil {
		t.Fatalf("new person: %v", err)
	}
	if first.ID != second.ID || first.Name != second.Name || first.Experience != second.Experience {
		t.Fatalf("factory output differs: %+v vs %+v", first, second)
	}
	if first.Status != StatusActive || first.Profession != MekWarrior || first.OriginFaction != "FS" {
		t.Fatalf("person = %+v, want active FS mekwarrior", first)
	}
	if age := first.Age(today()); age < 19 || age > 30 {
		t.Fatalf("age = %d, want between 19 and 30", age)
	}
	if first.Salary.IsZero() {
		t.Fatal("expected combatant salary")
	}
}

func TestFactoryHonorsGenderDirective(t *testing.T) {
	f := NewFactory(random.NewSeeded(1), nil, nil)
	for i := 0; i < 5; i++ {
		p, err := f.NewPerson(Dependent, "FS", GenderForceFemale)
		if err != nil {
			t.Fatalf("new person: %v", err)
		}
		if p.Gender != GenderFemale {
			t.Fatalf("gender = %q, want %q", p.Gender, GenderFemale)
		}
		if !p.Salary.IsZero() {
			t.Fatalf("dependent salary = %s, want 0", p.Salary)
		}
	}
}

func TestFactoryRejectsUnknownFaction(t *testing.T) {
	registry := faction.NewStatic(nil, nil, nil, nil)
	_, err := NewFactory(random.Zero{}, registry, nil).NewPerson(MekWarrior, "XX", GenderRandom)
	if err == nil {
		t.Fatal("expected error for unknown faction")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeFactionUnknown, "")) {
		t.Fatalf("error = %v, want faction unknown", err)
	}
}
