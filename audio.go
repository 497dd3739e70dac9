package openai

import (
	"context"
	"fmt"
	"iter"
	"strconv"

	"github.com/florianilch/openai-client-go/internal/form"
)

// Audio provides speech-to-text and text-to-speech.
type Audio struct {
	client *Client
}

// Audio returns the audio client.
func (c *Client) Audio() *Audio {
	return &Audio{client: c}
}

// CreateTranscriptionRequest is the multipart request for
// Audio.Transcribe.
type CreateTranscriptionRequest struct {
	File  InputFile `validate:"required"`
	Model string    `validate:"required"`

	ChunkingStrategy       string
	Include                []string
	Language               string
	Prompt                 string
	ResponseFormat         string
	Temperature            *float64
	TimestampGranularities []string
}

// EncodeForm implements FormEncoder.
func (r CreateTranscriptionRequest) EncodeForm(w *form.Writer) error {
	if err := r.File.encode(w, "file"); err != nil {
		return err
	}
	if err := w.Field("model", r.Model); err != nil {
		return err
	}

	for _, include := range r.Include {
		if err := w.Field("include[]", include); err != nil {
			return err
		}
	}
	for _, granularity := range r.TimestampGranularities {
		if err := w.Field("timestamp_granularities[]", granularity); err != nil {
			return err
		}
	}

	if r.Temperature != nil {
		if err := w.Field("temperature", strconv.FormatFloat(*r.Temperature, 'f', -1, 64)); err != nil {
			return err
		}
	}

	for name, value := range map[string]string{
		"chunking_strategy": r.ChunkingStrategy,
		"language":          r.Language,
		"prompt":            r.Prompt,
		"response_format":   r.ResponseFormat,
	} {
		if err := w.OptionalField(name, value); err != nil {
			return err
		}
	}

	return nil
}

// CreateTranslationRequest is the multipart request for Audio.Translate.
type CreateTranslationRequest struct {
	File  InputFile `validate:"required"`
	Model string    `validate:"required"`

	Prompt         string
	ResponseFormat string
	Temperature    *float64
}

// EncodeForm implements FormEncoder.
func (r CreateTranslationRequest) EncodeForm(w *form.Writer) error {
	if err := r.File.encode(w, "file"); err != nil {
		return err
	}
	if err := w.Field("model", r.Model); err != nil {
		return err
	}

	if r.Temperature != nil {
		if err := w.Field("temperature", strconv.FormatFloat(*r.Temperature, 'f', -1, 64)); err != nil {
			return err
		}
	}

	for name, value := range map[string]string{
		"prompt":          r.Prompt,
		"response_format": r.ResponseFormat,
	} {
		if err := w.OptionalField(name, value); err != nil {
			return err
		}
	}

	return nil
}

// Transcription is the JSON response for transcriptions and translations.
// Verbose formats additionally carry segments and words.
type Transcription struct {
	Text string `json:"text"`

	Language string               `json:"language,omitempty"`
	Duration float64              `json:"duration,omitempty"`
	Segments []TranscriptSegment  `json:"segments,omitempty"`
	Words    []TranscriptWord     `json:"words,omitempty"`
	Usage    *TranscriptionUsage  `json:"usage,omitempty"`
	Logprobs []TranscriptLogprob  `json:"logprobs,omitempty"`
}

// TranscriptSegment is one verbose-format segment.
type TranscriptSegment struct {
	ID               int     `json:"id"`
	Seek             int     `json:"seek"`
	Start            float64 `json:"start"`
	End              float64 `json:"end"`
	Text             string  `json:"text"`
	Tokens           []int   `json:"tokens"`
	Temperature      float64 `json:"temperature"`
	AvgLogprob       float64 `json:"avg_logprob"`
	CompressionRatio float64 `json:"compression_ratio"`
	NoSpeechProb     float64 `json:"no_speech_prob"`
}

// TranscriptWord is one verbose-format word timestamp.
type TranscriptWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptLogprob is a per-token logprob included on request.
type TranscriptLogprob struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
	Bytes   []int   `json:"bytes,omitempty"`
}

// TranscriptionUsage reports token or duration consumption.
type TranscriptionUsage struct {
	Type         string  `json:"type"`
	InputTokens  int     `json:"input_tokens,omitempty"`
	OutputTokens int     `json:"output_tokens,omitempty"`
	TotalTokens  int     `json:"total_tokens,omitempty"`
	Seconds      float64 `json:"seconds,omitempty"`
}

// CreateSpeechRequest is the request for Audio.Speech.
type CreateSpeechRequest struct {
	Input string `json:"input" validate:"required"`
	Model string `json:"model" validate:"required"`
	Voice string `json:"voice" validate:"required"`

	Instructions   string   `json:"instructions,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
	StreamFormat   string   `json:"stream_format,omitempty"`
}

// Speech holds generated audio bytes and the content type the server
// reported.
type Speech struct {
	Data        []byte
	ContentType string
}

// SpeechChunk is one streamed audio event when stream_format is "sse".
type SpeechChunk struct {
	Type  string `json:"type"`
	Audio string `json:"audio,omitempty"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

// Transcribe converts audio into text in the input language.
func (a *Audio) Transcribe(ctx context.Context, req CreateTranscriptionRequest, opts ...RequestOption) (*Transcription, error) {
	if err := a.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := PostForm[Transcription](ctx, a.client, "/audio/transcriptions", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// TranscribeRaw is Transcribe for non-JSON response formats (text, srt,
// vtt). It returns the body verbatim.
func (a *Audio) TranscribeRaw(ctx context.Context, req CreateTranscriptionRequest, opts ...RequestOption) (string, error) {
	if err := a.client.validateRequest(req); err != nil {
		return "", err
	}

	body, _, err := a.client.postFormRaw(ctx, "/audio/transcriptions", req, opts...)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Translate converts audio into English text.
func (a *Audio) Translate(ctx context.Context, req CreateTranslationRequest, opts ...RequestOption) (*Transcription, error) {
	if err := a.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := PostForm[Transcription](ctx, a.client, "/audio/translations", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Speech generates audio from the input text.
func (a *Audio) Speech(ctx context.Context, req CreateSpeechRequest, opts ...RequestOption) (*Speech, error) {
	if req.StreamFormat == "sse" {
		return nil, invalidArgumentf("when stream_format is sse, use Audio.SpeechStream")
	}

	if err := a.client.validateRequest(req); err != nil {
		return nil, err
	}

	body, contentType, err := a.client.postRaw(ctx, "/audio/speech", req, opts...)
	if err != nil {
		return nil, err
	}
	return &Speech{Data: body, ContentType: contentType}, nil
}

// SpeechStream generates audio and streams it as base64-encoded SSE
// chunks. The request's stream_format is forced to "sse".
func (a *Audio) SpeechStream(ctx context.Context, req CreateSpeechRequest, opts ...RequestOption) (iter.Seq2[*SpeechChunk, error], error) {
	if req.StreamFormat != "" && req.StreamFormat != "sse" {
		return nil, invalidArgumentf("unsupported stream_format %q, SpeechStream requires sse", req.StreamFormat)
	}
	req.StreamFormat = "sse"

	if err := a.client.validateRequest(req); err != nil {
		return nil, err
	}

	return PostStream[CreateSpeechRequest, SpeechChunk](ctx, a.client, "/audio/speech", req, opts...)
}

var _ fmt.Stringer = (*Transcription)(nil)

// String returns the transcript text.
func (t *Transcription) String() string {
	return t.Text
}
