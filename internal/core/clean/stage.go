package clean

// StageID names one rewrite stage. The numeric order is the only order
// stages ever run in; profiles pick a prefix-compatible subset.
type StageID uint8

const (
	StageUnicode StageID = iota
	StageLowercase
	StageLinks
	StagePunctuation
	StageSplitNumber
	StageLaughter
	StageEmoji
	StageStretch
	StageCompound
	StageTypo
	StageSlang
	StageFuzzy
	StageNegation
	StageStopwords
	StageWhitespace
	StageLowInfo

	numStages
)

var stageNames = [numStages]string{
	StageUnicode:     "unicode",
	StageLowercase:   "lowercase",
	StageLinks:       "links",
	StagePunctuation: "punctuation",
	StageSplitNumber: "split_number",
	StageLaughter:    "laughter",
	StageEmoji:       "emoji",
	StageStretch:     "stretch",
	StageCompound:    "compound",
	StageTypo:        "typo",
	StageSlang:       "slang",
	StageFuzzy:       "fuzzy",
	StageNegation:    "negation",
	StageStopwords:   "stopwords",
	StageWhitespace:  "whitespace",
	StageLowInfo:     "low_info",
}

func (s StageID) String() string {
	if s < numStages {
		return stageNames[s]
	}
	return "unknown"
}

// stageFunc rewrites a whole text
type stageFunc func(string) string
