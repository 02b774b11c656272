package hierarchy

// Tier is the fixed seniority taxonomy analytics buckets against. Values
// mirror User.HierarchyLevel, 0 = most senior.
type Tier int

const (
	TierExecutive Tier = iota
	TierSeniorLeadership
	TierManagement
	TierTeamLead
	TierIndividualContributor
)

// Tiers is the taxonomy in display order.
var Tiers = []Tier{
	TierExecutive,
	TierSeniorLeadership,
	TierManagement,
	TierTeamLead,
	TierIndividualContributor,
}

var tierLabels = map[Tier]string{
	TierExecutive:             "Executive",
	TierSeniorLeadership:      "Senior Leadership",
	TierManagement:            "Management",
	TierTeamLead:              "Team Lead",
	TierIndividualContributor: "Individual Contributor",
}

func (t Tier) Label() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return "Unknown"
}

// TierForLevel maps a hierarchy level onto the taxonomy. Levels deeper than
// the taxonomy collapse into Individual Contributor; negative levels clamp
// to Executive.
func TierForLevel(level int) Tier {
	if level < int(TierExecutive) {
		return TierExecutive
	}
	if level > int(TierIndividualContributor) {
		return TierIndividualContributor
	}
	return Tier(level)
}
