// Package domain contains the core domain types for the arbitrage context.
package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultDEXKeywords are matched as lowercase substrings of an exchange name.
// AMM and aggregator brands first, then networks that only show up in DEX venue names.
var DefaultDEXKeywords = []string{
	"uniswap",
	"sushiswap",
	"pancakeswap",
	"curve",
	"balancer",
	"1inch",
	"dodo",
	"kyberswap",
	"quickswap",
	"trader joe",
	"traderjoe",
	"raydium",
	"orca",
	"jupiter",
	"meteora",
	"aerodrome",
	"velodrome",
	"camelot",
	"osmosis",
	"bancor",
	"thorchain",
	"maverick",
	"dex",
	"swap",
	"arbitrum",
	"optimism",
	"polygon",
	"avalanche",
	"bsc",
}

// KnownChains are stripped from DEX names when they appear in parentheses.
var KnownChains = []string{
	"ethereum",
	"bsc",
	"bnb chain",
	"bnb smart chain",
	"polygon",
	"polygon pos",
	"arbitrum",
	"arbitrum one",
	"optimism",
	"base",
	"avalanche",
	"solana",
	"fantom",
	"linea",
	"zksync",
}

const minCleanNameLen = 3

var (
	addressPattern = regexp.MustCompile(`0x[0-9a-fA-F]{40}`)
	versionPattern = regexp.MustCompile(`(?i)\(\s*v\d+(\.\d+)?\s*\)`)
	wordPattern    = regexp.MustCompile(`(?i)\b(pool|exchange|version)\b`)
	spacePattern   = regexp.MustCompile(`\s+`)
	chainPattern   = buildChainPattern(KnownChains)
)

func buildChainPattern(chains []string) *regexp.Regexp {
	quoted := make([]string, len(chains))
	for i, c := range chains {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`(?i)\(\s*(` + strings.Join(quoted, "|") + `)\s*\)`)
}

// Classifier decides whether an exchange is decentralized.
// The zero value has no keywords; use NewClassifier.
type Classifier struct {
	keywords []string
}

// NewClassifier returns a classifier using DefaultDEXKeywords plus extra.
func NewClassifier(extra ...string) *Classifier {
	keywords := make([]string, 0, len(DefaultDEXKeywords)+len(extra))
	keywords = append(keywords, DefaultDEXKeywords...)
	for _, k := range extra {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Classifier{keywords: keywords}
}

// Classify reports whether name contains any DEX keyword.
// Substring match, no word boundaries: "Uniswapper" is a DEX.
func (c *Classifier) Classify(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// CleanDisplayName strips contract addresses, version tags, chain annotations
// and filler words from a DEX venue name. Falls back to the original name when
// the cleaned result is shorter than three characters.
func CleanDisplayName(name string) string {
	if name == "" {
		return ""
	}

	cleaned := addressPattern.ReplaceAllString(name, "")
	cleaned = versionPattern.ReplaceAllString(cleaned, "")
	cleaned = chainPattern.ReplaceAllString(cleaned, "")
	cleaned = wordPattern.ReplaceAllString(cleaned, "")
	cleaned = spacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, "-. \t")

	if utf8.RuneCountInString(cleaned) < minCleanNameLen {
		return name
	}
	return cleaned
}

var defaultClassifier = NewClassifier()

// Classify uses the default keyword list.
func Classify(name string) bool {
	return defaultClassifier.Classify(name)
}
