package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioTranscribeEncodesMultipart(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"text":"hello there"}`,
	}}}
	c := newTestClient(tr)

	transcript, err := c.Audio().Transcribe(t.Context(), CreateTranscriptionRequest{
		File:                   FileFromBytes("speech.mp3", []byte("mp3-bytes")),
		Model:                  "whisper-1",
		Language:               "en",
		TimestampGranularities: []string{"word", "segment"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", transcript.String())

	fields, files := parseMultipart(t, tr.requests[0], tr.bodies[0])
	assert.Equal(t, []string{"whisper-1"}, fields["model"])
	assert.Equal(t, []string{"en"}, fields["language"])
	assert.Equal(t, []string{"word", "segment"}, fields["timestamp_granularities[]"])
	assert.Equal(t, "speech.mp3:mp3-bytes", files["file"])
}

func TestAudioSpeechReturnsRawAudio(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status:      200,
		contentType: "audio/mpeg",
		body:        "mp3-bytes",
	}}}
	c := newTestClient(tr)

	speech, err := c.Audio().Speech(t.Context(), CreateSpeechRequest{
		Input: "hello",
		Model: "tts-1",
		Voice: "alloy",
	})
	require.NoError(t, err)

	assert.Equal(t, "mp3-bytes", string(speech.Data))
	assert.Equal(t, "audio/mpeg", speech.ContentType)
}

func TestAudioSpeechRejectsSSEFormat(t *testing.T) {
	c := NewClient(WithConfig(NewConfig(WithAPIKey("sk-test"))))

	_, err := c.Audio().Speech(t.Context(), CreateSpeechRequest{
		Input:        "hello",
		Model:        "tts-1",
		Voice:        "alloy",
		StreamFormat: "sse",
	})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	assert.Contains(t, invalidErr.Reason, "SpeechStream")
}
