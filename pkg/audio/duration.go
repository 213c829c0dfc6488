package audio

import (
	"errors"
	"os"

	"github.com/gopxl/beep/v2/wav"
)

// Duration returns the playback length of a WAV file in seconds.
func Duration(path string) (float64, error) {
	f, err := os.Open(path)

	if err != nil {
		return 0, err
	}

	defer f.Close()

	streamer, format, err := wav.Decode(f)

	if err != nil {
		return 0, err
	}

	if format.SampleRate <= 0 {
		return 0, errors.New("invalid sample rate")
	}

	return format.SampleRate.D(streamer.Len()).Seconds(), nil
}
