package prize

import "fmt"

// Config carries one competition's financial parameters. All money is in
// integer minor-currency units (pennies).
type Config struct {
	EntryFeePennies int64
	EntrantsCount   int
	AdminFeePercent int

	// Operator overrides. A guaranteed pool replaces the computed net pool
	// outright; pools never auto-shrink below the guarantee. Any shortfall
	// against gross is a financial concern outside this engine.
	GuaranteedPoolPennies *int64
	FirstPlacePennies     *int64

	// FirstPlaceShareBasisPoints is the default first-place fraction when no
	// override is set; zero means the package default (2500 = 25%).
	FirstPlaceShareBasisPoints int
}

// Breakdown is the derived prize structure, all in pennies.
type Breakdown struct {
	Gross      int64
	AdminFee   int64
	NetPool    int64
	FirstPlace int64
}

const defaultFirstPlaceShareBasisPoints = 2500

// Compute derives the prize breakdown. Pure and total: zero entrants yields
// a zero pool, and no division appears anywhere on the path.
//
// Rounding is half-up on pennies. The policy is fixed because reconciliation
// downstream re-derives these numbers.
func Compute(cfg Config) (Breakdown, error) {
	if cfg.EntryFeePennies < 0 {
		return Breakdown{}, fmt.Errorf("entry fee cannot be negative")
	}
	if cfg.EntrantsCount < 0 {
		return Breakdown{}, fmt.Errorf("entrants count cannot be negative")
	}
	if cfg.AdminFeePercent < 0 || cfg.AdminFeePercent > 100 {
		return Breakdown{}, fmt.Errorf("admin fee percent must be between 0 and 100")
	}

	share := cfg.FirstPlaceShareBasisPoints
	if share == 0 {
		share = defaultFirstPlaceShareBasisPoints
	}
	if share < 0 || share > 10_000 {
		return Breakdown{}, fmt.Errorf("first place share must be between 0 and 10000 basis points")
	}

	gross := cfg.EntryFeePennies * int64(cfg.EntrantsCount)
	adminFee := roundHalfUp(gross*int64(cfg.AdminFeePercent), 100)

	netPool := gross - adminFee
	if cfg.GuaranteedPoolPennies != nil {
		netPool = *cfg.GuaranteedPoolPennies
	}

	firstPlace := roundHalfUp(netPool*int64(share), 10_000)
	if cfg.FirstPlacePennies != nil {
		firstPlace = *cfg.FirstPlacePennies
	}

	return Breakdown{
		Gross:      gross,
		AdminFee:   adminFee,
		NetPool:    netPool,
		FirstPlace: firstPlace,
	}, nil
}

// roundHalfUp divides numerator by divisor rounding half away from zero.
// Divisor is always a positive constant here, never derived from input.
func roundHalfUp(numerator, divisor int64) int64 {
	if numerator >= 0 {
		return (numerator + divisor/2) / divisor
	}
	return -((-numerator + divisor/2) / divisor)
}
