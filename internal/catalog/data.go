package catalog

// BuiltinVersion identifies the embedded reference dataset. It participates
// in cache keys so a dataset bump invalidates cached results.
const BuiltinVersion = "aisc-16.0/2024.1"

// Built-in section table. Steel values follow the AISC Shapes Database
// v16.0; aluminum tubes are sharp-corner 6061-T6 properties. Ordered by
// family, then ascending weight - this order is the deterministic tie-break
// for selection.
var builtinSections = []PoleSection{
	// Square HSS, ASTM A500 Grade B (Fy = 46 ksi)
	{Designation: "HSS4X4X1/4", Family: FamilyHSS, AreaIn2: 3.37, DepthIn: 4.0, WeightPLF: 12.21, SxIn3: 3.10, IxIn4: 6.21, RxIn: 1.36, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS5X5X1/4", Family: FamilyHSS, AreaIn2: 4.30, DepthIn: 5.0, WeightPLF: 15.62, SxIn3: 5.03, IxIn4: 12.6, RxIn: 1.72, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS6X6X1/4", Family: FamilyHSS, AreaIn2: 5.24, DepthIn: 6.0, WeightPLF: 19.02, SxIn3: 9.54, IxIn4: 28.6, RxIn: 2.34, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS6X6X3/8", Family: FamilyHSS, AreaIn2: 7.58, DepthIn: 6.0, WeightPLF: 27.48, SxIn3: 13.2, IxIn4: 39.5, RxIn: 2.28, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS8X8X1/4", Family: FamilyHSS, AreaIn2: 7.10, DepthIn: 8.0, WeightPLF: 25.82, SxIn3: 17.7, IxIn4: 70.7, RxIn: 3.15, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS8X8X3/8", Family: FamilyHSS, AreaIn2: 10.4, DepthIn: 8.0, WeightPLF: 37.69, SxIn3: 24.9, IxIn4: 100.0, RxIn: 3.10, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS8X8X1/2", Family: FamilyHSS, AreaIn2: 13.5, DepthIn: 8.0, WeightPLF: 48.85, SxIn3: 31.2, IxIn4: 125.0, RxIn: 3.04, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS10X10X3/8", Family: FamilyHSS, AreaIn2: 13.2, DepthIn: 10.0, WeightPLF: 48.24, SxIn3: 40.4, IxIn4: 202.0, RxIn: 3.92, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS10X10X1/2", Family: FamilyHSS, AreaIn2: 17.2, DepthIn: 10.0, WeightPLF: 62.46, SxIn3: 51.2, IxIn4: 256.0, RxIn: 3.86, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS12X12X3/8", Family: FamilyHSS, AreaIn2: 16.0, DepthIn: 12.0, WeightPLF: 58.10, SxIn3: 59.5, IxIn4: 357.0, RxIn: 4.73, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS12X12X1/2", Family: FamilyHSS, AreaIn2: 21.0, DepthIn: 12.0, WeightPLF: 76.07, SxIn3: 76.2, IxIn4: 457.0, RxIn: 4.66, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS14X14X1/2", Family: FamilyHSS, AreaIn2: 24.7, DepthIn: 14.0, WeightPLF: 89.68, SxIn3: 106.0, IxIn4: 743.0, RxIn: 5.48, FyKsi: 46, FuKsi: 58},
	{Designation: "HSS16X16X1/2", Family: FamilyHSS, AreaIn2: 28.4, DepthIn: 16.0, WeightPLF: 103.30, SxIn3: 141.0, IxIn4: 1130.0, RxIn: 6.31, FyKsi: 46, FuKsi: 58},

	// Standard weight pipe, ASTM A53 Grade B (Fy = 36 ksi)
	{Designation: "PIPE4STD", Family: FamilyPipe, AreaIn2: 2.96, DepthIn: 4.5, WeightPLF: 10.79, SxIn3: 3.03, IxIn4: 6.82, RxIn: 1.51, FyKsi: 36, FuKsi: 58},
	{Designation: "PIPE6STD", Family: FamilyPipe, AreaIn2: 5.20, DepthIn: 6.625, WeightPLF: 18.97, SxIn3: 8.00, IxIn4: 26.5, RxIn: 2.25, FyKsi: 36, FuKsi: 58},
	{Designation: "PIPE8STD", Family: FamilyPipe, AreaIn2: 7.85, DepthIn: 8.625, WeightPLF: 28.55, SxIn3: 15.8, IxIn4: 68.1, RxIn: 2.95, FyKsi: 36, FuKsi: 58},
	{Designation: "PIPE10STD", Family: FamilyPipe, AreaIn2: 11.1, DepthIn: 10.75, WeightPLF: 40.48, SxIn3: 28.1, IxIn4: 151.0, RxIn: 3.68, FyKsi: 36, FuKsi: 58},
	{Designation: "PIPE12STD", Family: FamilyPipe, AreaIn2: 13.6, DepthIn: 12.75, WeightPLF: 49.56, SxIn3: 41.1, IxIn4: 262.0, RxIn: 4.39, FyKsi: 36, FuKsi: 58},

	// Wide flange, ASTM A992 (Fy = 50 ksi)
	{Designation: "W8X31", Family: FamilyW, AreaIn2: 9.13, DepthIn: 8.0, WeightPLF: 31.0, SxIn3: 27.5, IxIn4: 110.0, RxIn: 3.47, FyKsi: 50, FuKsi: 65},
	{Designation: "W10X33", Family: FamilyW, AreaIn2: 9.71, DepthIn: 9.73, WeightPLF: 33.0, SxIn3: 35.0, IxIn4: 171.0, RxIn: 4.19, FyKsi: 50, FuKsi: 65},
	{Designation: "W12X40", Family: FamilyW, AreaIn2: 11.7, DepthIn: 11.9, WeightPLF: 40.0, SxIn3: 51.5, IxIn4: 307.0, RxIn: 5.13, FyKsi: 50, FuKsi: 65},
	{Designation: "W14X48", Family: FamilyW, AreaIn2: 14.1, DepthIn: 13.8, WeightPLF: 48.0, SxIn3: 70.2, IxIn4: 484.0, RxIn: 5.85, FyKsi: 50, FuKsi: 65},

	// Aluminum square tube, 6061-T6 (Fy = 35 ksi)
	{Designation: "AL4X4X1/4", Family: FamilyAluminum, AreaIn2: 3.75, DepthIn: 4.0, WeightPLF: 4.41, SxIn3: 4.41, IxIn4: 8.83, RxIn: 1.53, FyKsi: 35, FuKsi: 38},
	{Designation: "AL6X6X1/4", Family: FamilyAluminum, AreaIn2: 5.75, DepthIn: 6.0, WeightPLF: 6.76, SxIn3: 10.58, IxIn4: 31.7, RxIn: 2.35, FyKsi: 35, FuKsi: 38},
	{Designation: "AL8X8X3/8", Family: FamilyAluminum, AreaIn2: 11.44, DepthIn: 8.0, WeightPLF: 13.45, SxIn3: 27.8, IxIn4: 111.1, RxIn: 3.12, FyKsi: 35, FuKsi: 38},
}
