package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"Boston Red Sox", "boston red sox"},
		{"  Boston   RED sox!! ", "boston red sox"},
		{"Texas A&M Aggies", "texas a m aggies"},
		{"St. Louis Cardinals", "st louis cardinals"},
		{"San José State Spartans", "san jose state spartans"},
		{"Miami (FL) Hurricanes", "miami fl hurricanes"},
		{"San Francisco 49ers", "san francisco 49ers"},
		{"---", ""},
		{"Over", "over"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", " ", "Boston Red Sox", "TEXAS a&m", "Ole Miss Rebels", "Notre  Dame\tFighting-Irish",
		"Zürich", "__x__", "49ers!", "ÅÉÎ õü", "a.b.c", "日本 Team",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("NEW YORK YANKEES", "new-york yankees") {
		t.Error("case and punctuation must not change the key")
	}
	if Equal("New York Yankees", "New York Mets") {
		t.Error("different teams must not be equal")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Arizona State Sun Devils", "arizona-state-sun-devils"},
		{"Texas A&M Aggies", "texas-a-and-m-aggies"},
		{"San José State", "san-jose-state"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(map[string]map[string]string{
		"mlb": {"Oakland Athletics": "Athletics"},
		"cfb": {"Mississippi Rebels": "Ole Miss Rebels"},
	})

	tests := []struct {
		name  string
		sport string
		input string
		want  string
	}{
		{"alias hit", "mlb", "oakland athletics", "athletics"},
		{"alias hit with punctuation", "cfb", "Mississippi-Rebels!", "ole miss rebels"},
		{"not aliased", "mlb", "Boston Red Sox", "boston red sox"},
		{"alias from another sport", "nfl", "Oakland Athletics", "oakland athletics"},
		{"unknown sport", "cricket", "Mumbai Indians", "mumbai indians"},
		{"empty", "mlb", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.sport, tt.input); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.sport, tt.input, got, tt.want)
			}
		})
	}

	if !r.Same("cfb", "Mississippi Rebels", "OLE MISS REBELS") {
		t.Error("alias and canonical name should resolve to the same key")
	}
}

func TestResolverUnknownSportFailsOpen(t *testing.T) {
	var nilResolver *Resolver
	empty := NewResolver(nil)
	for _, name := range []string{"Boston Red Sox", "  x  ", ""} {
		if got := empty.Resolve("unknown", name); got != Normalize(name) {
			t.Errorf("Resolve(unknown, %q) = %q, want %q", name, got, Normalize(name))
		}
		if got := nilResolver.Resolve("unknown", name); got != Normalize(name) {
			t.Errorf("nil Resolve(unknown, %q) = %q", name, got)
		}
	}
}
