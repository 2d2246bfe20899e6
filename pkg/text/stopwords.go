package text

// stopwords is the curated filter set: general English stopwords plus
// finance filler words that appear in nearly every outlook document without
// carrying signal ("outlook", "expect", "continue", ...).
var stopwords = map[string]bool{}

func init() {
	for _, w := range stopwordList {
		stopwords[w] = true
	}
}

// IsStopword reports whether the lowercased word is filtered out.
func IsStopword(w string) bool { return stopwords[w] }

var stopwordList = []string{
	// General English
	"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with",
	"by", "from", "as", "is", "was", "are", "were", "been", "be", "have", "has", "had",
	"do", "does", "did", "will", "would", "could", "should", "may", "might", "must",
	"shall", "can", "need", "dare", "ought", "used", "it", "its", "this", "that",
	"these", "those", "i", "you", "he", "she", "we", "they", "what", "which", "who",
	"when", "where", "why", "how", "all", "each", "every", "both", "few", "more",
	"most", "other", "some", "such", "no", "nor", "not", "only", "own", "same", "so",
	"than", "too", "very", "s", "t", "just", "don", "now", "also", "into", "over",
	"after", "before", "above", "below", "between", "through", "during", "under",
	"again", "further", "then", "once", "here", "there", "any", "while", "about",
	"against", "up", "down", "out", "off", "if", "because", "until", "although",
	"however", "therefore", "thus", "hence", "yet", "still", "already", "even",
	"though", "whether", "since", "unless", "despite", "rather", "quite", "per",
	"their", "them", "his", "her", "him", "your", "our", "my", "me", "us", "being",
	"having", "doing", "going", "coming", "getting", "making", "taking", "seeing",
	"think", "see", "get", "make", "take", "come", "go", "know", "say", "said",
	"ve", "ll", "re", "d", "m", "o", "y", "ain", "aren", "couldn", "didn", "doesn",
	"hadn", "hasn", "haven", "isn", "ma", "mightn", "mustn", "needn", "shan", "shouldn",
	"wasn", "weren", "won", "wouldn", "well", "one", "two", "like", "much", "many",
	"way", "back", "first", "last", "long", "new", "old", "high", "low", "good",
	"bad", "best", "worst", "next", "part", "likely", "given", "across", "around",

	// Finance filler - common in outlook documents but not insightful
	"year", "years", "expect", "expected", "expecting", "outlook", "view", "views",
	"believe", "believes", "thinks", "sees", "remain", "remains",
	"continue", "continues", "continued", "look", "looking", "term", "near", "recent",
	"recently", "current", "currently", "potential", "potentially", "unlikely",
	"possible", "possibly", "suggest", "suggests", "suggesting", "indicate", "indicates",
	"including", "include", "includes", "particularly", "especially", "significant",
	"significantly", "relatively", "overall", "generally", "typically", "essentially",
}
