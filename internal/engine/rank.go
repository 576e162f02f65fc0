package engine

// Rank is a cosmetic title on the GP ladder.
type Rank struct {
	Name        string
	GPThreshold float64
}

// Ranks is ordered from lowest to highest threshold.
var Ranks = []Rank{
	{"CHICK", 0},
	{"WOOD HAMMER", 1100},
	{"DOUBLE WOOD HAMMER", 1200},
	{"STONE AXE", 1500},
	{"DOUBLE STONE AXE", 1800},
	{"METAL AXE", 2300},
	{"DOUBLE METAL AXE", 2800},
	{"SILVER AXE", 3500},
	{"DOUBLE SILVER AXE", 4200},
	{"GOLD AXE", 5100},
	{"DOUBLE GOLD AXE", 6000},
	{"METAL DOUBLE SIDED AXE", 7000},
	{"METAL DOUBLE SIDED AXE+", 8500},
	{"SILVER DOUBLE SIDED AXE", 10000},
	{"SILVER DOUBLE SIDED AXE+", 12000},
	{"GOLD DOUBLE SIDED AXE", 15000},
	{"GOLD DOUBLE SIDED AXE+", 20000},
	{"VIOLET SCEPTER", 25000},
	{"SAPPHIRE SCEPTER", 30000},
	{"RED RUBY SCEPTER", 40000},
	{"DIAMOND SCEPTER", 50000},
	{"BLUE DRAGON", 75000},
	{"RED DRAGON", 100000},
	{"SILVER DRAGON", 150000},
}

// RankForGP returns the highest rank the GP qualifies for and the next rank
// up, or nil when already at the top.
func RankForGP(gp float64) (current Rank, next *Rank) {
	current = Ranks[0]
	for i := range Ranks {
		if gp < Ranks[i].GPThreshold {
			n := Ranks[i]
			return current, &n
		}
		current = Ranks[i]
	}
	return current, nil
}
