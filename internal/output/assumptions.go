package output

// DefaultAssumptions lists the modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Base liability of $13.1B at $50/t carbon price, 10% discount rate, Aggressive pathway",
	"Liability scales linearly with carbon price and inversely with discount rate",
	"Pathway multipliers: BAU 1.44, Moderate 1.21, Aggressive 1.00, Early Action 0.92",
	"Monte Carlo: uniform price (±30%) and emission (±20%) shocks, 1,000 draws",
	"Facility liabilities are fixed reference shares, not rescaled by scenario",
}
