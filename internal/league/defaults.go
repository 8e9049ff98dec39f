package league

// Sport keys of the built-in boards.
const (
	MLB = "mlb"
	NFL = "nfl"
	CFB = "cfb"
)

// Defaults returns fresh copies of the built-in sports so callers may adjust
// fields such as LookaheadDays before building a Registry.
func Defaults() []Sport {
	return []Sport{
		{
			Key:           MLB,
			ProviderKey:   "baseball_mlb",
			Title:         "MLB",
			LookaheadDays: 5,
			GroupLabel:    "Division",
			AllGroup:      "All",
			Groups:        []string{"AL East", "AL Central", "AL West", "NL East", "NL Central", "NL West"},
			Members:       copyMap(mlbDivisions),
			Aliases:       copyMap(mlbAliases),
		},
		{
			Key:           NFL,
			ProviderKey:   "americanfootball_nfl",
			Title:         "NFL",
			LookaheadDays: 9,
			GroupLabel:    "Division",
			AllGroup:      "All",
			Groups: []string{
				"AFC East", "AFC North", "AFC South", "AFC West",
				"NFC East", "NFC North", "NFC South", "NFC West",
			},
			Members: copyMap(nflDivisions),
			Aliases: copyMap(nflAliases),
		},
		{
			Key:           CFB,
			ProviderKey:   "americanfootball_ncaaf",
			Title:         "College Football",
			LookaheadDays: 9,
			HideLocation:  true,
			GroupLabel:    "Conference",
			AllGroup:      "All (Power 4 + ND)",
			Groups:        []string{"SEC", "Big Ten", "Big 12", "ACC", "Notre Dame"},
			Members:       copyMap(cfbConferences),
			Aliases:       copyMap(cfbAliases),
			AllowedGroups: []string{"SEC", "Big Ten", "Big 12", "ACC", "Notre Dame"},
			GroupAliases:  map[string][]string{"Notre Dame": {"Independent"}},
		},
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var nflDivisions = map[string]string{
	"Buffalo Bills": "AFC East", "Miami Dolphins": "AFC East", "New England Patriots": "AFC East", "New York Jets": "AFC East",
	"Baltimore Ravens": "AFC North", "Cincinnati Bengals": "AFC North", "Cleveland Browns": "AFC North", "Pittsburgh Steelers": "AFC North",
	"Houston Texans": "AFC South", "Indianapolis Colts": "AFC South", "Jacksonville Jaguars": "AFC South", "Tennessee Titans": "AFC South",
	"Denver Broncos": "AFC West", "Kansas City Chiefs": "AFC West", "Las Vegas Raiders": "AFC West", "Los Angeles Chargers": "AFC West",
	"Dallas Cowboys": "NFC East", "New York Giants": "NFC East", "Philadelphia Eagles": "NFC East", "Washington Commanders": "NFC East",
	"Chicago Bears": "NFC North", "Detroit Lions": "NFC North", "Green Bay Packers": "NFC North", "Minnesota Vikings": "NFC North",
	"Atlanta Falcons": "NFC South", "Carolina Panthers": "NFC South", "New Orleans Saints": "NFC South", "Tampa Bay Buccaneers": "NFC South",
	"Arizona Cardinals": "NFC West", "Los Angeles Rams": "NFC West", "San Francisco 49ers": "NFC West", "Seattle Seahawks": "NFC West",
}

var nflAliases = map[string]string{
	"Washington Football Team": "Washington Commanders",
	"Washington Redskins":      "Washington Commanders",
	"Oakland Raiders":          "Las Vegas Raiders",
	"San Diego Chargers":       "Los Angeles Chargers",
	"LA Chargers":              "Los Angeles Chargers",
	"St. Louis Rams":           "Los Angeles Rams",
	"LA Rams":                  "Los Angeles Rams",
}

var mlbDivisions = map[string]string{
	"Baltimore Orioles": "AL East", "Boston Red Sox": "AL East", "New York Yankees": "AL East", "Tampa Bay Rays": "AL East", "Toronto Blue Jays": "AL East",
	"Chicago White Sox": "AL Central", "Cleveland Guardians": "AL Central", "Detroit Tigers": "AL Central", "Kansas City Royals": "AL Central", "Minnesota Twins": "AL Central",
	"Houston Astros": "AL West", "Los Angeles Angels": "AL West", "Oakland Athletics": "AL West", "Seattle Mariners": "AL West", "Texas Rangers": "AL West",
	"Atlanta Braves": "NL East", "Miami Marlins": "NL East", "New York Mets": "NL East", "Philadelphia Phillies": "NL East", "Washington Nationals": "NL East",
	"Chicago Cubs": "NL Central", "Cincinnati Reds": "NL Central", "Milwaukee Brewers": "NL Central", "Pittsburgh Pirates": "NL Central", "St. Louis Cardinals": "NL Central",
	"Arizona Diamondbacks": "NL West", "Colorado Rockies": "NL West", "Los Angeles Dodgers": "NL West", "San Diego Padres": "NL West", "San Francisco Giants": "NL West",
}

var mlbAliases = map[string]string{
	"Athletics":                     "Oakland Athletics",
	"Sacramento Athletics":          "Oakland Athletics",
	"Cleveland Indians":             "Cleveland Guardians",
	"LA Angels":                     "Los Angeles Angels",
	"Los Angeles Angels of Anaheim": "Los Angeles Angels",
	"LA Dodgers":                    "Los Angeles Dodgers",
	"Florida Marlins":               "Miami Marlins",
}

var cfbConferences = map[string]string{
	"Alabama Crimson Tide": "SEC", "Arkansas Razorbacks": "SEC", "Auburn Tigers": "SEC", "Florida Gators": "SEC", "Georgia Bulldogs": "SEC",
	"Kentucky Wildcats": "SEC", "LSU Tigers": "SEC", "Mississippi State Bulldogs": "SEC", "Missouri Tigers": "SEC", "Ole Miss Rebels": "SEC",
	"South Carolina Gamecocks": "SEC", "Tennessee Volunteers": "SEC", "Texas A&M Aggies": "SEC", "Vanderbilt Commodores": "SEC",
	"Texas Longhorns": "SEC", "Oklahoma Sooners": "SEC",

	"Illinois Fighting Illini": "Big Ten", "Indiana Hoosiers": "Big Ten", "Iowa Hawkeyes": "Big Ten", "Maryland Terrapins": "Big Ten",
	"Michigan Wolverines": "Big Ten", "Michigan State Spartans": "Big Ten", "Minnesota Golden Gophers": "Big Ten", "Nebraska Cornhuskers": "Big Ten",
	"Northwestern Wildcats": "Big Ten", "Ohio State Buckeyes": "Big Ten", "Penn State Nittany Lions": "Big Ten", "Purdue Boilermakers": "Big Ten",
	"Rutgers Scarlet Knights": "Big Ten", "Wisconsin Badgers": "Big Ten",
	"Oregon Ducks": "Big Ten", "UCLA Bruins": "Big Ten", "USC Trojans": "Big Ten", "Washington Huskies": "Big Ten",

	"Boston College Eagles": "ACC", "Clemson Tigers": "ACC", "Duke Blue Devils": "ACC", "Florida State Seminoles": "ACC",
	"Georgia Tech Yellow Jackets": "ACC", "Louisville Cardinals": "ACC", "Miami Hurricanes": "ACC", "North Carolina Tar Heels": "ACC",
	"NC State Wolfpack": "ACC", "Pittsburgh Panthers": "ACC", "Syracuse Orange": "ACC", "Virginia Cavaliers": "ACC",
	"Virginia Tech Hokies": "ACC", "Wake Forest Demon Deacons": "ACC", "California Golden Bears": "ACC", "Stanford Cardinal": "ACC", "SMU Mustangs": "ACC",

	"Arizona Wildcats": "Big 12", "Arizona State Sun Devils": "Big 12", "Baylor Bears": "Big 12", "BYU Cougars": "Big 12",
	"Cincinnati Bearcats": "Big 12", "Colorado Buffaloes": "Big 12", "Houston Cougars": "Big 12", "Iowa State Cyclones": "Big 12",
	"Kansas Jayhawks": "Big 12", "Kansas State Wildcats": "Big 12", "Oklahoma State Cowboys": "Big 12", "TCU Horned Frogs": "Big 12",
	"Texas Tech Red Raiders": "Big 12", "UCF Knights": "Big 12", "Utah Utes": "Big 12", "West Virginia Mountaineers": "Big 12",

	"Notre Dame Fighting Irish": "Notre Dame",
}

var cfbAliases = map[string]string{
	"Mississippi Rebels":            "Ole Miss Rebels",
	"Miami (FL) Hurricanes":         "Miami Hurricanes",
	"Miami FL Hurricanes":           "Miami Hurricanes",
	"North Carolina State Wolfpack": "NC State Wolfpack",
	"Pitt Panthers":                 "Pittsburgh Panthers",
	"Louisiana State Tigers":        "LSU Tigers",
	"Brigham Young Cougars":         "BYU Cougars",
	"Central Florida Knights":       "UCF Knights",
	"Southern California Trojans":   "USC Trojans",
	"Southern Methodist Mustangs":   "SMU Mustangs",
	"Texas Christian Horned Frogs":  "TCU Horned Frogs",
	"Cal Golden Bears":              "California Golden Bears",
	"Notre Dame":                    "Notre Dame Fighting Irish",
}
