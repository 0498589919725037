package clean

import (
	"fmt"
	"strings"
)

// Profile selects which consumer the output is shaped for
type Profile uint8

const (
	// Tokenizer keeps surface forms for subword tokenizer training
	Tokenizer Profile = iota
	// Analysis adds laughter, emoji, stretch and compound handling
	Analysis
	// Model fully normalizes for semantic model input
	Model

	numProfiles
)

var profileNames = [numProfiles]string{
	Tokenizer: "tokenizer",
	Analysis:  "analysis",
	Model:     "model",
}

var tokenizerStages = []StageID{
	StageUnicode,
	StageLowercase,
	StageLinks,
	StagePunctuation,
	StageSplitNumber,
}

var analysisStages = append(clone(tokenizerStages),
	StageLaughter,
	StageEmoji,
	StageStretch,
	StageCompound,
)

var modelStages = append(clone(analysisStages),
	StageTypo,
	StageSlang,
	StageFuzzy,
	StageNegation,
	StageStopwords,
	StageWhitespace,
	StageLowInfo,
)

var profileStages = [numProfiles][]StageID{
	Tokenizer: tokenizerStages,
	Analysis:  analysisStages,
	Model:     modelStages,
}

func init() {
	// every profile extends the previous one and runs stages in ascending order
	for p := Profile(0); p < numProfiles; p++ {
		st := profileStages[p]
		if len(st) == 0 {
			panic(fmt.Sprintf("clean: profile %s has no stages", p))
		}
		for i := 1; i < len(st); i++ {
			if st[i] <= st[i-1] {
				panic(fmt.Sprintf("clean: profile %s runs %s after %s", p, st[i], st[i-1]))
			}
		}
		if p > 0 {
			prev := profileStages[p-1]
			for i, id := range prev {
				if i >= len(st) || st[i] != id {
					panic(fmt.Sprintf("clean: profile %s does not extend %s", p, p-1))
				}
			}
		}
	}
}

func (p Profile) String() string {
	if p < numProfiles {
		return profileNames[p]
	}
	return "unknown"
}

// Valid reports whether p is one of the defined profiles
func (p Profile) Valid() bool { return p < numProfiles }

// Stages returns the ordered stage list of p
func (p Profile) Stages() []StageID {
	if !p.Valid() {
		return nil
	}
	return clone(profileStages[p])
}

// MarshalText encodes the profile name
func (p Profile) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("clean: invalid profile %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a profile name
func (p *Profile) UnmarshalText(b []byte) error {
	v, err := ParseProfile(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Profiles lists every profile in order
func Profiles() []Profile {
	out := make([]Profile, 0, numProfiles)
	for p := Profile(0); p < numProfiles; p++ {
		out = append(out, p)
	}
	return out
}

// ParseProfile maps a case-insensitive name to a Profile
func ParseProfile(s string) (Profile, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range profileNames {
		if n == name {
			return Profile(p), nil
		}
	}
	return 0, fmt.Errorf("clean: unknown profile %q (want tokenizer, analysis or model)", s)
}

func clone(ids []StageID) []StageID {
	return append([]StageID(nil), ids...)
}
