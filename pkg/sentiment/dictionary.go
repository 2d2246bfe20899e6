package sentiment

import "context"

// dictionaryTier serves curated sentiment for common finance terms and
// short phrases. Exact match on the normalized term; no I/O. Hits are not
// copied into the memory tier since the dictionary lookup is already O(1).
type dictionaryTier struct{}

func (dictionaryTier) Name() string { return "dictionary" }

func (dictionaryTier) Lookup(ctx context.Context, term string) (Result, bool) {
	res, ok := dictionary[term]
	return res, ok
}

// DictionaryLookup exposes the curated dictionary for cache pre-warming.
func DictionaryLookup(term string) (Result, bool) {
	res, ok := dictionary[Normalize(term)]
	if ok {
		res.Term = Normalize(term)
	}
	return res, ok
}

// DictionaryTerms returns all curated terms. Used by the warm tool to seed
// the persistent store.
func DictionaryTerms() []string {
	terms := make([]string, 0, len(dictionary))
	for t := range dictionary {
		terms = append(terms, t)
	}
	return terms
}

// dictionary holds hand-assigned sentiment for terms where classifier
// output is either unnecessary or unreliable. Most neutral entries carry a
// zero normalized score; "unemployment", "ai", "artificial intelligence",
// and "diversification" are deliberate exceptions with a small tilt.
var dictionary = map[string]Result{
	// Strongly positive (bullish)
	"growth":        {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"bullish":       {Label: LabelPositive, Score: 0.95, NormalizedScore: 0.95},
	"rally":         {Label: LabelPositive, Score: 0.90, NormalizedScore: 0.90},
	"surge":         {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"boom":          {Label: LabelPositive, Score: 0.88, NormalizedScore: 0.88},
	"recovery":      {Label: LabelPositive, Score: 0.80, NormalizedScore: 0.80},
	"expansion":     {Label: LabelPositive, Score: 0.82, NormalizedScore: 0.82},
	"upside":        {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"outperform":    {Label: LabelPositive, Score: 0.88, NormalizedScore: 0.88},
	"optimistic":    {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"strength":      {Label: LabelPositive, Score: 0.78, NormalizedScore: 0.78},
	"strong":        {Label: LabelPositive, Score: 0.75, NormalizedScore: 0.75},
	"gains":         {Label: LabelPositive, Score: 0.80, NormalizedScore: 0.80},
	"profit":        {Label: LabelPositive, Score: 0.82, NormalizedScore: 0.82},
	"profits":       {Label: LabelPositive, Score: 0.82, NormalizedScore: 0.82},
	"opportunity":   {Label: LabelPositive, Score: 0.75, NormalizedScore: 0.75},
	"opportunities": {Label: LabelPositive, Score: 0.75, NormalizedScore: 0.75},
	"tailwind":      {Label: LabelPositive, Score: 0.78, NormalizedScore: 0.78},
	"tailwinds":     {Label: LabelPositive, Score: 0.78, NormalizedScore: 0.78},
	"momentum":      {Label: LabelPositive, Score: 0.70, NormalizedScore: 0.70},
	"resilient":     {Label: LabelPositive, Score: 0.75, NormalizedScore: 0.75},
	"resilience":    {Label: LabelPositive, Score: 0.75, NormalizedScore: 0.75},
	"improving":     {Label: LabelPositive, Score: 0.72, NormalizedScore: 0.72},
	"acceleration":  {Label: LabelPositive, Score: 0.78, NormalizedScore: 0.78},
	"overweight":    {Label: LabelPositive, Score: 0.70, NormalizedScore: 0.70},
	"upgrade":       {Label: LabelPositive, Score: 0.80, NormalizedScore: 0.80},
	"buy":           {Label: LabelPositive, Score: 0.75, NormalizedScore: 0.75},

	// Positive phrases
	"rate cuts":        {Label: LabelPositive, Score: 0.72, NormalizedScore: 0.72},
	"rate cut":         {Label: LabelPositive, Score: 0.72, NormalizedScore: 0.72},
	"soft landing":     {Label: LabelPositive, Score: 0.80, NormalizedScore: 0.80},
	"strong economy":   {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"economic growth":  {Label: LabelPositive, Score: 0.82, NormalizedScore: 0.82},
	"earnings growth":  {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"risk appetite":    {Label: LabelPositive, Score: 0.65, NormalizedScore: 0.65},
	"risk on":          {Label: LabelPositive, Score: 0.70, NormalizedScore: 0.70},
	"market rally":     {Label: LabelPositive, Score: 0.88, NormalizedScore: 0.88},
	"bull market":      {Label: LabelPositive, Score: 0.90, NormalizedScore: 0.90},
	"positive outlook": {Label: LabelPositive, Score: 0.85, NormalizedScore: 0.85},
	"upward revision":  {Label: LabelPositive, Score: 0.78, NormalizedScore: 0.78},

	// Strongly negative (bearish)
	"recession":   {Label: LabelNegative, Score: 0.90, NormalizedScore: -0.90},
	"bearish":     {Label: LabelNegative, Score: 0.95, NormalizedScore: -0.95},
	"crash":       {Label: LabelNegative, Score: 0.95, NormalizedScore: -0.95},
	"collapse":    {Label: LabelNegative, Score: 0.92, NormalizedScore: -0.92},
	"crisis":      {Label: LabelNegative, Score: 0.88, NormalizedScore: -0.88},
	"downturn":    {Label: LabelNegative, Score: 0.85, NormalizedScore: -0.85},
	"decline":     {Label: LabelNegative, Score: 0.75, NormalizedScore: -0.75},
	"downside":    {Label: LabelNegative, Score: 0.78, NormalizedScore: -0.78},
	"weakness":    {Label: LabelNegative, Score: 0.72, NormalizedScore: -0.72},
	"weak":        {Label: LabelNegative, Score: 0.70, NormalizedScore: -0.70},
	"risk":        {Label: LabelNegative, Score: 0.55, NormalizedScore: -0.55},
	"risks":       {Label: LabelNegative, Score: 0.55, NormalizedScore: -0.55},
	"headwind":    {Label: LabelNegative, Score: 0.72, NormalizedScore: -0.72},
	"headwinds":   {Label: LabelNegative, Score: 0.72, NormalizedScore: -0.72},
	"underperform": {Label: LabelNegative, Score: 0.80, NormalizedScore: -0.80},
	"pessimistic": {Label: LabelNegative, Score: 0.85, NormalizedScore: -0.85},
	"contraction": {Label: LabelNegative, Score: 0.78, NormalizedScore: -0.78},
	"slowing":     {Label: LabelNegative, Score: 0.65, NormalizedScore: -0.65},
	"slowdown":    {Label: LabelNegative, Score: 0.70, NormalizedScore: -0.70},
	"losses":      {Label: LabelNegative, Score: 0.80, NormalizedScore: -0.80},
	"loss":        {Label: LabelNegative, Score: 0.75, NormalizedScore: -0.75},
	"sell":        {Label: LabelNegative, Score: 0.70, NormalizedScore: -0.70},
	"underweight": {Label: LabelNegative, Score: 0.68, NormalizedScore: -0.68},
	"downgrade":   {Label: LabelNegative, Score: 0.78, NormalizedScore: -0.78},
	"volatility":  {Label: LabelNegative, Score: 0.60, NormalizedScore: -0.60},
	"uncertainty": {Label: LabelNegative, Score: 0.58, NormalizedScore: -0.58},
	"turbulence":  {Label: LabelNegative, Score: 0.70, NormalizedScore: -0.70},
	"correction":  {Label: LabelNegative, Score: 0.65, NormalizedScore: -0.65},
	"selloff":     {Label: LabelNegative, Score: 0.82, NormalizedScore: -0.82},
	"sell-off":    {Label: LabelNegative, Score: 0.82, NormalizedScore: -0.82},

	// Negative phrases
	"rate hikes":        {Label: LabelNegative, Score: 0.65, NormalizedScore: -0.65},
	"rate hike":         {Label: LabelNegative, Score: 0.65, NormalizedScore: -0.65},
	"hard landing":      {Label: LabelNegative, Score: 0.85, NormalizedScore: -0.85},
	"market crash":      {Label: LabelNegative, Score: 0.95, NormalizedScore: -0.95},
	"bear market":       {Label: LabelNegative, Score: 0.90, NormalizedScore: -0.90},
	"recession risk":    {Label: LabelNegative, Score: 0.85, NormalizedScore: -0.85},
	"geopolitical risk": {Label: LabelNegative, Score: 0.70, NormalizedScore: -0.70},
	"downward revision": {Label: LabelNegative, Score: 0.75, NormalizedScore: -0.75},
	"risk off":          {Label: LabelNegative, Score: 0.68, NormalizedScore: -0.68},
	"credit crunch":     {Label: LabelNegative, Score: 0.85, NormalizedScore: -0.85},
	"debt crisis":       {Label: LabelNegative, Score: 0.88, NormalizedScore: -0.88},
	"financial crisis":  {Label: LabelNegative, Score: 0.92, NormalizedScore: -0.92},

	// Neutral (policy, metrics, assets)
	"inflation":        {Label: LabelNeutral, Score: 0.85, NormalizedScore: 0},
	"interest rates":   {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"rates":            {Label: LabelNeutral, Score: 0.85, NormalizedScore: 0},
	"federal reserve":  {Label: LabelNeutral, Score: 0.95, NormalizedScore: 0},
	"fed":              {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"policy":           {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"monetary policy":  {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"fiscal policy":    {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"gdp":              {Label: LabelNeutral, Score: 0.95, NormalizedScore: 0},
	"employment":       {Label: LabelNeutral, Score: 0.88, NormalizedScore: 0},
	"unemployment":     {Label: LabelNeutral, Score: 0.75, NormalizedScore: -0.25},
	"bonds":            {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"equities":         {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"stocks":           {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"market":           {Label: LabelNeutral, Score: 0.95, NormalizedScore: 0},
	"markets":          {Label: LabelNeutral, Score: 0.95, NormalizedScore: 0},
	"yields":           {Label: LabelNeutral, Score: 0.88, NormalizedScore: 0},
	"credit":           {Label: LabelNeutral, Score: 0.85, NormalizedScore: 0},
	"dollar":           {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"currencies":       {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"commodities":      {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"oil":              {Label: LabelNeutral, Score: 0.88, NormalizedScore: 0},
	"gold":             {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"china":            {Label: LabelNeutral, Score: 0.88, NormalizedScore: 0},
	"europe":           {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"emerging markets": {Label: LabelNeutral, Score: 0.85, NormalizedScore: 0},
	"technology":       {Label: LabelNeutral, Score: 0.88, NormalizedScore: 0},
	"ai":               {Label: LabelNeutral, Score: 0.85, NormalizedScore: 0.15},
	"artificial intelligence": {Label: LabelNeutral, Score: 0.85, NormalizedScore: 0.15},
	"valuation":       {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"valuations":      {Label: LabelNeutral, Score: 0.90, NormalizedScore: 0},
	"duration":        {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"allocation":      {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"portfolio":       {Label: LabelNeutral, Score: 0.92, NormalizedScore: 0},
	"diversification": {Label: LabelNeutral, Score: 0.88, NormalizedScore: 0.10},
	"sector":          {Label: LabelNeutral, Score: 0.95, NormalizedScore: 0},
	"sectors":         {Label: LabelNeutral, Score: 0.95, NormalizedScore: 0},
}

var _ Tier = dictionaryTier{}
