package lexicon

// FuzzyTarget is one canonical spelling and the noisy variants that should
// resolve to it. Targets are ordered; the first canonical reaching the best
// score wins ties.
type FuzzyTarget struct {
	Canonical string   `json:"canonical" yaml:"canonical"`
	Variants  []string `json:"variants" yaml:"variants"`
}

// Negation holds the negation word set and the form every member rewrites to
type Negation struct {
	Canonical string   `json:"canonical" yaml:"canonical"`
	Words     []string `json:"words" yaml:"words"`
}

// Tables is the caller supplied content of a Store, as decoded from a
// lexicon file or assembled in code. New copies everything it keeps.
type Tables struct {
	Version           int               `json:"version" yaml:"version"`
	Slang             map[string]string `json:"slang" yaml:"slang"`
	Typo              map[string]string `json:"typo" yaml:"typo"`
	Whitelist         []string          `json:"whitelist" yaml:"whitelist"`
	Fuzzy             []FuzzyTarget     `json:"fuzzy" yaml:"fuzzy"`
	PrefixSuffixRules map[string]string `json:"prefix_suffix_rules" yaml:"prefix_suffix_rules"`
	Emoji             map[string]string `json:"emoji" yaml:"emoji"`
	Laughter          []string          `json:"laughter_markers" yaml:"laughter_markers"`
	Negation          Negation          `json:"negation" yaml:"negation"`
	Stopwords         []string          `json:"stopwords" yaml:"stopwords"`
	POS               map[string]string `json:"pos" yaml:"pos"`
}

// Stats reports table sizes of a constructed Store
type Stats struct {
	Version    int `json:"version"`
	Slang      int `json:"slang"`
	Typo       int `json:"typo"`
	Whitelist  int `json:"whitelist"`
	Fuzzy      int `json:"fuzzy_targets"`
	Variants   int `json:"fuzzy_variants"`
	Rules      int `json:"prefix_suffix_rules"`
	Emoji      int `json:"emoji"`
	Laughter   int `json:"laughter_markers"`
	Negation   int `json:"negation"`
	Stopwords  int `json:"stopwords"`
	POS        int `json:"pos"`
	KnownWords int `json:"known_words"`
}
