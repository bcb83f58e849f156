package catalog

// Personality shapes how a rival nation treats the player.
type Personality string

const (
	Aggressive   Personality = "aggressive"
	Cautious     Personality = "cautious"
	Commercial   Personality = "commercial"
	Isolationist Personality = "isolationist"
	Opportunist  Personality = "opportunist"
	Honorable    Personality = "honorable"
	Fanatic      Personality = "fanatic"
	Scientific   Personality = "scientific"
)

// NationTemplate seeds a rival nation at game start.
type NationTemplate struct {
	Name            string
	Personality     Personality
	Description     string
	Population      int
	MilitaryPower   int
	Aggressiveness  int // 0-100
	ExpansionDesire int // 0-100
}

// NationTemplates is the roster new games draw their rivals from.
var NationTemplates = []NationTemplate{
	{"Iron-Blood Empire", Aggressive, "A warlike empire that lives for conquest.", 800, 400, 85, 90},
	{"Holy Guardian Kingdom", Cautious, "A careful kingdom that fortifies before it marches.", 600, 300, 20, 30},
	{"Merchant League", Commercial, "Trading cities bound by contracts.", 500, 150, 15, 40},
	{"Hermit Forest", Isolationist, "A secretive realm hidden among the trees.", 300, 200, 10, 5},
	{"Wandering Clans", Opportunist, "Nomads who follow whichever wind is strongest.", 400, 200, 60, 70},
	{"Knightly Order", Honorable, "A chivalric state that keeps its word.", 500, 350, 40, 50},
	{"Sacred Flame Theocracy", Fanatic, "Zealots who see heresy in every neighbor.", 600, 300, 70, 60},
	{"Academy City", Scientific, "A city of scholars chasing the future.", 400, 150, 25, 35},
	{"Barbarian Confederacy", Aggressive, "Raiders who live by plunder.", 350, 250, 90, 80},
	{"Abyssal Folk", Isolationist, "An enigmatic people of the deep caverns.", 250, 180, 30, 20},
}

// RivalCount is how many nations a new game draws from the roster.
const RivalCount = 5
