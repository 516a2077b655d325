package crimemap

// Area is one fixed catalog entry: a named region with static coordinates
// and a base display radius in meters. The radius is a property of the area
// itself, not of any incident data.
type Area struct {
	Name       string
	Lat        float64
	Lng        float64
	BaseRadius float64
}

// Catalog is the hand-curated list of covered areas. Server data never adds
// to or removes from it; counts for names outside it are dropped.
var Catalog = []Area{
	{"colaba", 18.911, 72.814, 1200},
	{"churchgate", 18.936, 72.828, 800},
	{"grant road", 18.975, 72.825, 900},
	{"charni road", 18.9586, 72.8126, 700},
	{"byculla", 18.989, 72.844, 1500},
	{"mazgaon", 18.956, 72.84, 1100},
	{"pydhonie", 18.952, 72.833, 600},
	{"dongri", 18.948, 72.83, 800},
	{"dadar", 19.018, 72.845, 2000},
	{"parel", 19.0, 72.824, 1800},
	{"lower parel", 18.993, 72.811, 1400},
	{"worli", 19.018, 72.812, 1600},
	{"prabhadevi", 18.989, 72.807, 1000},
	{"mahim", 19.036, 72.835, 1300},
	{"sion", 19.017, 72.856, 1700},
	{"kurla", 19.066, 72.873, 3000},
	{"chunabhatti", 19.035, 72.863, 1200},
	{"wadala", 19.012, 72.866, 2200},
	{"chembur", 19.042, 72.9, 2500},
	{"govandi", 19.036, 72.912, 2000},
	{"mankhurd", 19.044, 72.955, 2800},
	{"bandra", 19.059, 72.829, 2200},
	{"khar", 19.056, 72.816, 1400},
	{"santacruz", 19.064, 72.842, 2000},
	{"juhu", 19.098, 72.826, 1800},
	{"vile parle", 19.102, 72.834, 1600},
	{"andheri", 19.1197, 72.8464, 4000},
	{"jogeshwari", 19.133, 72.846, 2200},
	{"goregaon", 19.146, 72.852, 2800},
	{"malad", 19.1796, 72.8561, 3200},
	{"kandivali", 19.205, 72.844, 2600},
	{"borivali", 19.23, 72.846, 3500},
	{"dahisar", 19.28, 72.85, 2400},
	{"ghatkopar", 19.091, 72.882, 2800},
	{"vidyavihar", 19.071, 72.899, 1500},
	{"vikhroli", 19.089, 72.909, 2200},
	{"kanjurmarg", 19.123, 72.913, 2000},
	{"bhandup", 19.144, 72.918, 2400},
	{"mulund", 19.167, 72.966, 3000},
	{"vashi", 19.079, 72.998, 2600},
	{"nerul", 19.035, 73.013, 2800},
	{"belapur", 18.998, 73.028, 3200},
	{"sanpada", 19.029, 72.997, 1800},
	{"kopar khairane", 19.072, 73.019, 2200},
	{"airoli", 19.148, 72.994, 2400},
	{"panvel", 18.996, 73.116, 4000},
	{"thane", 19.2183, 72.9781, 5000},
	{"kalwa", 19.203, 72.975, 2000},
	{"mumbra", 19.175, 72.956, 2600},
	{"diva", 19.16, 72.904, 1800},
	{"bhiwandi", 19.277, 73.008, 3500},
	{"vasai", 19.3919, 72.8397, 4500},
	{"virar", 19.4559, 72.8114, 4000},
	{"nallasopara", 19.444, 72.787, 3000},
	{"palghar", 19.695, 72.771, 3800},
}
