package ibc

// IBC 2024 Chapter 18 foundation constants

const (
	// Coefficient in the nonconstrained pole embedment equation
	// Section 1807.3.2.1, Equation 18-1
	EmbedmentCoefficient = 4.36

	// Fraction of embedment depth at which the resultant lateral load is
	// assumed to act when converting base moment to lateral force
	LateralArmDepthFraction = 2.0 / 3.0

	// Minimum embedment depth for pole foundations (ft)
	MinEmbedmentFt = 2.0

	// Depth beyond which the estimating pipeline flags the design for
	// engineering review (ft)
	MaxEmbedmentFt = 15.0

	// Allowable lateral bearing pressure gain per foot of depth for
	// typical sand/gravel soil (psf/ft)
	// Table 1806.2
	LateralBearingPSFPerFt = 150.0

	// Minimum safety factor against overturning
	// Section 1605.2.1
	OverturningSafetyFactorMin = 1.5

	// Default allowable soil bearing pressure when no geotechnical report
	// is available (psf)
	DefaultSoilBearingPSF = 3000.0

	// Assumed soil unit weight for passive pressure resistance (pcf)
	SoilDensityPCF = 120.0

	// Rankine passive pressure coefficient Kp, conservative for compacted
	// granular backfill
	PassivePressureCoefficient = 3.0
)
