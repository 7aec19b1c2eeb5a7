package sim

// playbackSpeedSpec is the authored playback-speed payload: either a fixed
// speed or a random pick among candidate speeds.
type playbackSpeedSpec struct {
	Random     bool      `json:"random"`
	Speed      float64   `json:"speed"`
	Candidates []float64 `json:"candidates"`
}

// basicSettingsSpec is the authored settings payload of a basic-settings node.
type basicSettingsSpec struct {
	GuessTime      NumberOrRange     `json:"guessTime"`
	ExtraGuessTime NumberOrRange     `json:"extraGuessTime"`
	SamplePoint    NumberOrRange     `json:"samplePoint"`
	PlaybackSpeed  playbackSpeedSpec `json:"playbackSpeed"`
}

// numberOfSongsSpec is the authored settings payload of a number-of-songs
// node: a fixed count or an inclusive range.
type numberOfSongsSpec struct {
	Count NumberOrRange `json:"count"`
}

// resolveBasicSettings turns one basic-settings node into its effective
// display values. Guess time and extra guess time resolve to a static number
// only when not ranged; ranges pass through verbatim so each song can roll
// its own later. The sample point always passes through verbatim. Playback
// speed resolves by uniformly picking one candidate when in random mode.
func resolveBasicSettings(node Node, rng *RNG) (*ResolvedBasicSettings, error) {
	var spec basicSettingsSpec
	if err := decodeSettings(node.Settings, &spec); err != nil {
		return nil, &SettingsError{NodeID: node.ID, DefinitionID: node.DefinitionID, Field: "guessTime", Err: err}
	}

	speed := spec.PlaybackSpeed.Speed
	if spec.PlaybackSpeed.Random {
		if len(spec.PlaybackSpeed.Candidates) == 0 {
			return nil, &SettingsError{NodeID: node.ID, DefinitionID: node.DefinitionID, Field: "playbackSpeed.candidates"}
		}
		speed = spec.PlaybackSpeed.Candidates[rng.Pick(len(spec.PlaybackSpeed.Candidates))]
	}
	if speed == 0 {
		speed = 1
	}

	return &ResolvedBasicSettings{
		GuessTime:      spec.GuessTime,
		ExtraGuessTime: spec.ExtraGuessTime,
		SamplePoint:    spec.SamplePoint,
		PlaybackSpeed:  speed,
	}, nil
}

// resolveNumberOfSongs turns one number-of-songs node into a concrete count.
func resolveNumberOfSongs(node Node, rng *RNG) (int, error) {
	var spec numberOfSongsSpec
	if err := decodeSettings(node.Settings, &spec); err != nil {
		return 0, &SettingsError{NodeID: node.ID, DefinitionID: node.DefinitionID, Field: "count", Err: err}
	}
	if spec.Count.Ranged {
		return rng.IntBetween(int(spec.Count.Min), int(spec.Count.Max)), nil
	}
	return int(spec.Count.Value), nil
}
