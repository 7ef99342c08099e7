package config

// Default values for optional configuration fields.
const (
	DefaultInitialBudget    = "100"
	DefaultBidStep          = "0.1"
	DefaultHistoryRetention = 20
	DefaultUnit             = "Cr"
)

// DefaultBidSteps are the selectable increments.
var DefaultBidSteps = []string{"0.1", "0.2", "0.5", "1"}

// DefaultOrganizations are the ten franchises of the league.
var DefaultOrganizations = []OrganizationConfig{
	{Code: "CSK", Name: "Chennai Super Kings"},
	{Code: "MI", Name: "Mumbai Indians"},
	{Code: "RCB", Name: "Royal Challengers Bangalore"},
	{Code: "KKR", Name: "Kolkata Knight Riders"},
	{Code: "GT", Name: "Gujarat Titans"},
	{Code: "LSG", Name: "Lucknow Super Giants"},
	{Code: "RR", Name: "Rajasthan Royals"},
	{Code: "SRH", Name: "Sunrisers Hyderabad"},
	{Code: "DC", Name: "Delhi Capitals"},
	{Code: "PBKS", Name: "Punjab Kings"},
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.InitialBudget == "" {
		c.InitialBudget = DefaultInitialBudget
	}
	if len(c.BidSteps) == 0 {
		c.BidSteps = append([]string(nil), DefaultBidSteps...)
	}
	if c.DefaultBidStep == "" {
		c.DefaultBidStep = DefaultBidStep
	}
	if c.HistoryRetention == 0 {
		c.HistoryRetention = DefaultHistoryRetention
	}
	if c.Unit == "" {
		c.Unit = DefaultUnit
	}
	if len(c.Organizations) == 0 {
		c.Organizations = append([]OrganizationConfig(nil), DefaultOrganizations...)
	}
}
