package rank

// tier maps a minimum point total to its display label.
type tier struct {
	min   int
	label string
}

// Tiers are ordered from highest threshold to lowest. Each tier covers
// [min, next tier's min); the top tier is unbounded above.
var tiers = []tier{
	{100000, "UNIEM 🏆"},
	{50000, "Rektör 👑"},
	{30000, "Profesör 📚"},
	{25000, "Doçent 🎓"},
	{20000, "Akademisyen ✒️"},
	{15000, "Usta Mentor 🏅"},
	{12000, "Topluluk Lideri 🌍"},
	{10000, "Vizyoner 🚀"},
	{8000, "Öncü 🔥"},
	{6000, "Deneyimli 🌟"},
	{4000, "Uzman 📖"},
	{3000, "Kıdemli 🎯"},
	{2000, "Mentor 🏆"},
	{1500, "Girişimci 💡"},
	{1000, "Stratejist 🧠"},
	{750, "Analist 📊"},
	{500, "Keşifçi 🔎"},
	{250, "Çalışkan 📜"},
	{100, "Yeni Üye 🎈"},
	{50, "Çaylak 🍃"},
}

// Default is the label for users below every threshold.
const Default = "Başlangıç 🌱"

// Calculate returns the rank label for a point total. It is a pure function:
// no side effects, always returns a label. Negative input is treated as zero;
// callers are expected to clamp before persisting.
func Calculate(points int) string {
	for _, t := range tiers {
		if points >= t.min {
			return t.label
		}
	}
	return Default
}

// Thresholds returns the ascending list of points at which the label changes,
// excluding zero. Used by tests and the admin dashboard.
func Thresholds() []int {
	out := make([]int, 0, len(tiers))
	for i := len(tiers) - 1; i >= 0; i-- {
		out = append(out, tiers[i].min)
	}
	return out
}
