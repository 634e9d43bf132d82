package companion

type StatDelta struct {
	Stat  StatKey `json:"stat"`
	Delta int     `json:"delta"`
}

type SkillDelta struct {
	Skill SkillKey
	Delta int
}

type ActionEffect struct {
	Stats   []StatDelta
	Skills  []SkillDelta
	Message string
}

var ActionEffects = map[ActionType]ActionEffect{
	ActionCoffee: {
		Stats: []StatDelta{
			{StatCoffee, 40},
			{StatSleep, -20},
			{StatEnergy, 30},
			{StatMood, 10},
		},
		Message: "%s sips the coffee and perks up.",
	},
	ActionFeeding: {
		Stats: []StatDelta{
			{StatAppetite, -40},
			{StatMood, 15},
			{StatEnergy, 5},
		},
		Message: "%s munches happily.",
	},
	ActionHug: {
		Stats: []StatDelta{
			{StatMood, 25},
			{StatSleep, -10},
		},
		Message: "%s snuggles into the hug.",
	},
	ActionGrooming: {
		Stats: []StatDelta{
			{StatFluffiness, 50},
			{StatMood, 10},
		},
		Message: "%s is brushed until the scales shine and the fluff glows.",
	},
	ActionReading: {
		Stats: []StatDelta{
			{StatSleep, 20},
			{StatMood, 20},
		},
		Skills:  []SkillDelta{{SkillLiterary, 2}},
		Message: "%s listens to the story with wide eyes.",
	},
	ActionPlay: {
		Stats: []StatDelta{
			{StatEnergy, -20},
			{StatMood, 15},
		},
		Skills:  []SkillDelta{{SkillGame, 2}},
		Message: "%s bounces around the room.",
	},
}

type TraitBonus struct {
	Stat    StatKey
	Delta   int
	Message string
}

// TraitBonuses lists the only trait/action pairs with an extra effect.
var TraitBonuses = map[ActionType]map[Trait]TraitBonus{
	ActionCoffee: {
		TraitCoffeeLover: {StatMood, CoffeeLoverMoodBonus, "%s closes their eyes and savours every drop. Coffee is life!"},
	},
	ActionHug: {
		TraitAffectionSeeker: {StatMood, AffectionSeekerMoodBonus, "%s purrs and refuses to let go."},
	},
}

func ParseAction(name string) (ActionType, bool) {
	t := ActionType(name)
	_, ok := ActionEffects[t]
	return t, ok
}
