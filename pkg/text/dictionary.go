package text

// financePhrases is the curated dictionary of known finance phrases matched
// by the sliding-window extractor. Dictionary membership also overrides the
// per-word stopword filter ("high yield" survives even though "high" is a
// stopword).
var financePhrases = map[string]bool{}

func init() {
	for _, p := range financePhraseList {
		financePhrases[p] = true
	}
}

// IsFinancePhrase reports whether the lowercased phrase is in the curated
// dictionary.
func IsFinancePhrase(p string) bool { return financePhrases[p] }

var financePhraseList = []string{
	"rate cuts", "rate hikes", "interest rates", "federal reserve", "central bank",
	"central banks", "soft landing", "hard landing", "credit spreads", "yield curve",
	"quantitative easing", "quantitative tightening", "monetary policy", "fiscal policy",
	"trade war", "trade tensions", "emerging markets", "developed markets",
	"risk assets", "risk appetite", "risk aversion", "bond yields", "treasury yields",
	"corporate bonds", "high yield", "investment grade", "equity markets", "stock market",
	"labor market", "job market", "real estate", "supply chain", "supply chains",
	"economic growth", "gdp growth", "inflation expectations", "price pressures",
	"balance sheet", "earnings growth", "profit margins", "valuations", "multiple expansion",
	"multiple compression", "bull market", "bear market", "market volatility",
	"dollar strength", "dollar weakness", "oil prices", "energy prices", "commodity prices",
	"consumer spending", "consumer confidence", "business confidence", "capital expenditure",
	"geopolitical risk", "geopolitical risks", "political risk", "election risk",
	"debt ceiling", "government shutdown", "recession risk", "recession fears",
	"global growth", "synchronized growth", "divergent growth", "stagflation",
	"disinflation", "deflation", "reflation", "taper tantrum", "pivot",
}
