package aisc

// AISC 360-22 Allowable Stress Design Constants

const (
	// Modulus of elasticity for structural steel (ksi)
	// Section E2
	E = 29000.0

	// ASD allowable stress factors
	// Chapter F: Fb = 0.66*Fy for compact sections
	// Chapter G: Fv = 0.40*Fy
	AllowableBendingFactor = 0.66
	AllowableShearFactor   = 0.40

	// Slenderness limit L/r for members in compression
	// Section E2 user note
	MaxSlendernessRatio = 200.0

	// E70 electrode strength for fillet weld capacity (ksi)
	WeldElectrodeFexx = 70.0
)

// Fb returns the allowable bending stress for a compact section (ksi).
// AISC 360-22 Chapter F (ASD)
func Fb(fyKsi float64) float64 {
	return AllowableBendingFactor * fyKsi
}

// Fv returns the allowable shear stress (ksi).
// AISC 360-22 Chapter G (ASD)
func Fv(fyKsi float64) float64 {
	return AllowableShearFactor * fyKsi
}

// Grade describes a structural steel grade.
type Grade struct {
	Name  string
	FyKsi float64 // specified minimum yield strength
	FuKsi float64 // specified minimum tensile strength
}

// Common grades for sign support members
// AISC Manual Table 2-4
var Grades = []Grade{
	{Name: "A500B", FyKsi: 46.0, FuKsi: 58.0},   // Grade B rectangular HSS
	{Name: "A500C", FyKsi: 50.0, FuKsi: 62.0},   // Grade C rectangular HSS
	{Name: "A53B", FyKsi: 36.0, FuKsi: 58.0},    // Grade B pipe
	{Name: "A36", FyKsi: 36.0, FuKsi: 58.0},     // plates, angles
	{Name: "A572-50", FyKsi: 50.0, FuKsi: 65.0}, // high-strength low-alloy
	{Name: "A992", FyKsi: 50.0, FuKsi: 65.0},    // W-shapes
}

// GradeByName looks up a steel grade. The second return is false for an
// unknown grade name.
func GradeByName(name string) (Grade, bool) {
	for _, g := range Grades {
		if g.Name == name {
			return g, true
		}
	}
	return Grade{}, false
}
